package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/briandowns/spinner"
	"github.com/younsl/keyaudit/internal/models"
	"github.com/younsl/keyaudit/pkg/utils"
)

// iamAPI is the subset of the IAM client used by the inventory fetch.
// Kept narrow so tests can substitute a fake.
type iamAPI interface {
	ListUsers(ctx context.Context, params *iam.ListUsersInput, optFns ...func(*iam.Options)) (*iam.ListUsersOutput, error)
	ListAccessKeys(ctx context.Context, params *iam.ListAccessKeysInput, optFns ...func(*iam.Options)) (*iam.ListAccessKeysOutput, error)
	GetAccessKeyLastUsed(ctx context.Context, params *iam.GetAccessKeyLastUsedInput, optFns ...func(*iam.Options)) (*iam.GetAccessKeyLastUsedOutput, error)
}

// InventoryClient lists IAM users and their access keys.
type InventoryClient struct {
	client      iamAPI
	showSpinner bool
}

// NewInventoryClient creates an InventoryClient from an authenticated session.
func NewInventoryClient(sess *Session) *InventoryClient {
	return &InventoryClient{
		client:      iam.NewFromConfig(sess.Config),
		showSpinner: true,
	}
}

// FetchInventory returns every IAM user in the account with a snapshot of
// its access keys. IAM is a global service; the session region only affects
// endpoint selection. Listing failures are reported as *FetchError.
func (c *InventoryClient) FetchInventory(ctx context.Context) ([]models.UserKeys, error) {
	var sp *spinner.Spinner
	if c.showSpinner {
		sp = spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		sp.Prefix = "Scanning IAM users "
		sp.Suffix = " (this is a global service)"
		sp.Start()
	}

	// List all IAM users
	var users []types.User
	var marker *string

	for {
		result, err := c.client.ListUsers(ctx, &iam.ListUsersInput{Marker: marker})
		if err != nil {
			if sp != nil {
				sp.Stop()
			}
			return nil, &FetchError{Op: "ListUsers", Err: err}
		}

		users = append(users, result.Users...)

		if !result.IsTruncated {
			break
		}
		marker = result.Marker
	}

	totalUsers := len(users)
	if sp != nil {
		sp.FinalMSG = fmt.Sprintf("✓ Found %d IAM users\n", totalUsers)
		sp.Stop()
	}

	if totalUsers == 0 {
		return []models.UserKeys{}, nil
	}

	// Collect access keys for each user
	if c.showSpinner {
		sp = spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		sp.Prefix = "Collecting access keys "
		sp.Start()
	}

	inventory := make([]models.UserKeys, 0, totalUsers)
	totalKeys := 0

	for i, user := range users {
		userName := utils.SafeDeref(user.UserName)

		keys, err := c.fetchUserKeys(ctx, userName)
		if err != nil {
			if sp != nil {
				sp.Stop()
			}
			return nil, err
		}

		inventory = append(inventory, models.UserKeys{UserName: userName, Keys: keys})
		totalKeys += len(keys)

		if sp != nil {
			percentage := ((i + 1) * 100) / totalUsers
			sp.Suffix = fmt.Sprintf(" (%d/%d, %d%%)", i+1, totalUsers, percentage)
		}
	}

	if sp != nil {
		sp.FinalMSG = fmt.Sprintf("✓ Collected %d access keys from %d IAM users\n", totalKeys, totalUsers)
		sp.Stop()
	}

	return inventory, nil
}

// fetchUserKeys lists the access keys of one user and resolves last-used
// metadata per key.
func (c *InventoryClient) fetchUserKeys(ctx context.Context, userName string) ([]models.AccessKey, error) {
	var metadata []types.AccessKeyMetadata
	var marker *string

	for {
		result, err := c.client.ListAccessKeys(ctx, &iam.ListAccessKeysInput{
			UserName: &userName,
			Marker:   marker,
		})
		if err != nil {
			return nil, &FetchError{Op: "ListAccessKeys", Err: err}
		}

		metadata = append(metadata, result.AccessKeyMetadata...)

		if !result.IsTruncated {
			break
		}
		marker = result.Marker
	}

	keys := make([]models.AccessKey, 0, len(metadata))
	for _, md := range metadata {
		key := models.AccessKey{
			KeyID:      utils.SafeDeref(md.AccessKeyId),
			UserName:   userName,
			Status:     string(md.Status),
			CreateDate: md.CreateDate,
		}

		// AWS omits LastUsedDate for keys that have never been used. A
		// failed lookup degrades the same way instead of aborting the run.
		lastUsed, err := c.client.GetAccessKeyLastUsed(ctx, &iam.GetAccessKeyLastUsedInput{
			AccessKeyId: md.AccessKeyId,
		})
		if err == nil && lastUsed.AccessKeyLastUsed != nil {
			key.LastUsedDate = lastUsed.AccessKeyLastUsed.LastUsedDate
			key.LastUsedService = utils.SafeDeref(lastUsed.AccessKeyLastUsed.ServiceName)
		}

		keys = append(keys, key)
	}

	return keys, nil
}
