package aws

import "fmt"

// AuthError indicates credential or profile resolution failed. The run
// aborts before any report is written.
type AuthError struct {
	Profile string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Profile != "" {
		return fmt.Sprintf("authentication failed for profile %q: %v", e.Profile, e.Err)
	}
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// FetchError indicates the IAM inventory listing failed. The run aborts
// before any report is written.
type FetchError struct {
	Op  string // IAM operation that failed (ListUsers, ListAccessKeys, ...)
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("inventory fetch failed during %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
