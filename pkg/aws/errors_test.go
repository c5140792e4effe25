package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthErrorMessage(t *testing.T) {
	cause := errors.New("profile not found")

	err := &AuthError{Profile: "staging", Err: cause}
	assert.Contains(t, err.Error(), `profile "staging"`)
	assert.ErrorIs(t, err, cause)

	err = &AuthError{Err: cause}
	assert.Equal(t, "authentication failed: profile not found", err.Error())
}

func TestFetchErrorMatching(t *testing.T) {
	cause := errors.New("throttled")
	wrapped := fmt.Errorf("scan aborted: %w", &FetchError{Op: "ListUsers", Err: cause})

	var fetchErr *FetchError
	assert.ErrorAs(t, wrapped, &fetchErr)
	assert.Equal(t, "ListUsers", fetchErr.Op)
	assert.ErrorIs(t, wrapped, cause)
}
