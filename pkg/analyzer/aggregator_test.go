package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/younsl/keyaudit/internal/models"
)

func finding(tier models.RiskTier, neverUsed bool) models.KeyFinding {
	f := models.KeyFinding{
		Key:              models.AccessKey{Status: models.KeyStatusActive},
		Tier:             tier,
		DaysSinceLastUse: 10,
	}
	if neverUsed {
		f.DaysSinceLastUse = -1
	}
	return f
}

func unparseableFinding() models.KeyFinding {
	return models.KeyFinding{
		Key:              models.AccessKey{Status: models.KeyStatusActive},
		Tier:             models.TierUnparseable,
		DaysSinceLastUse: -1,
		Unparseable:      true,
	}
}

func TestSummarizeUser(t *testing.T) {
	tests := []struct {
		name      string
		findings  []models.KeyFinding
		wantWorst models.RiskTier
	}{
		{
			name:      "no keys is compliant",
			findings:  nil,
			wantWorst: models.TierCompliant,
		},
		{
			name: "worst tier wins",
			findings: []models.KeyFinding{
				finding(models.TierMedium, false),
				finding(models.TierCritical, true),
				finding(models.TierCompliant, false),
			},
			wantWorst: models.TierCritical,
		},
		{
			name: "unparseable keys do not affect worst tier",
			findings: []models.KeyFinding{
				finding(models.TierCompliant, false),
				unparseableFinding(),
			},
			wantWorst: models.TierCompliant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SummarizeUser("alice", tt.findings)
			assert.Equal(t, "alice", summary.UserName)
			assert.Equal(t, len(tt.findings), summary.KeyCount)
			assert.Equal(t, tt.wantWorst, summary.WorstTier)
		})
	}
}

func TestSummarizeAccountCounts(t *testing.T) {
	users := []models.UserSummary{
		SummarizeUser("alice", []models.KeyFinding{
			finding(models.TierCritical, true),
			finding(models.TierCompliant, false),
		}),
		SummarizeUser("bob", []models.KeyFinding{
			finding(models.TierHigh, false),
			finding(models.TierMedium, false),
			unparseableFinding(),
		}),
		SummarizeUser("carol", nil),
	}

	summary := SummarizeAccount(users, models.DefaultRiskPolicy())

	assert.Equal(t, 3, summary.TotalUsers)
	assert.Equal(t, 2, summary.UsersWithKeys)
	assert.Equal(t, 5, summary.TotalKeys)
	assert.Equal(t, 1, summary.CriticalKeys)
	assert.Equal(t, 1, summary.HighRiskKeys)
	assert.Equal(t, 1, summary.MediumRiskKeys)
	assert.Equal(t, 1, summary.CompliantKeys)
	assert.Equal(t, 1, summary.NeverUsedKeys)
	assert.Equal(t, 1, summary.UnparseableKeys)

	// Tier counts sum to total keys minus unparseable keys
	tierSum := summary.CriticalKeys + summary.HighRiskKeys + summary.MediumRiskKeys +
		summary.LowRiskKeys + summary.CompliantKeys
	assert.Equal(t, summary.TotalKeys-summary.UnparseableKeys, tierSum)

	// 4 countable keys, 2 of them critical/high: 100 * 2/4 = 50.0
	assert.Equal(t, 50.0, summary.ComplianceRate)
	assert.Equal(t, models.StatusNonCompliant, summary.OverallStatus)
}

func TestSummarizeAccountEmptyAccount(t *testing.T) {
	summary := SummarizeAccount(nil, models.DefaultRiskPolicy())

	assert.Equal(t, 0, summary.TotalKeys)
	assert.Equal(t, 100.0, summary.ComplianceRate)
	assert.Equal(t, models.StatusCompliant, summary.OverallStatus)
}

func TestSummarizeAccountUsersWithoutKeys(t *testing.T) {
	users := []models.UserSummary{
		SummarizeUser("alice", nil),
		SummarizeUser("bob", nil),
	}

	summary := SummarizeAccount(users, models.DefaultRiskPolicy())

	assert.Equal(t, 2, summary.TotalUsers)
	assert.Equal(t, 0, summary.UsersWithKeys)
	assert.Equal(t, 100.0, summary.ComplianceRate)
	assert.Equal(t, models.StatusCompliant, summary.OverallStatus)
}

func TestSummarizeAccountRounding(t *testing.T) {
	users := []models.UserSummary{
		SummarizeUser("alice", []models.KeyFinding{
			finding(models.TierHigh, false),
			finding(models.TierCompliant, false),
			finding(models.TierCompliant, false),
		}),
	}

	summary := SummarizeAccount(users, models.DefaultRiskPolicy())

	// 100 * 2/3 = 66.666..., rounded to one decimal
	assert.Equal(t, 66.7, summary.ComplianceRate)
	assert.GreaterOrEqual(t, summary.ComplianceRate, 0.0)
	assert.LessOrEqual(t, summary.ComplianceRate, 100.0)
}

func TestSummarizeAccountCriticalForcesNonCompliant(t *testing.T) {
	findings := []models.KeyFinding{finding(models.TierCritical, true)}
	for i := 0; i < 99; i++ {
		findings = append(findings, finding(models.TierCompliant, false))
	}

	summary := SummarizeAccount([]models.UserSummary{SummarizeUser("alice", findings)}, models.DefaultRiskPolicy())

	// Rate clears the 90% floor, but a single critical key still fails the account.
	assert.Equal(t, 99.0, summary.ComplianceRate)
	assert.Equal(t, models.StatusNonCompliant, summary.OverallStatus)
}

func TestAnalyzeInventory(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -100)
	used := now.AddDate(0, 0, -5)

	inventory := []models.UserKeys{
		{
			UserName: "alice",
			Keys: []models.AccessKey{
				{KeyID: "AKIA1", UserName: "alice", Status: models.KeyStatusActive, CreateDate: &created},
				{KeyID: "AKIA2", UserName: "alice", Status: models.KeyStatusActive, CreateDate: &created, LastUsedDate: &used},
			},
		},
		{UserName: "bob", Keys: []models.AccessKey{
			{KeyID: "AKIA3", UserName: "bob", Status: models.KeyStatusInactive},
		}},
	}

	users := AnalyzeInventory(inventory, now, models.DefaultRiskPolicy())

	assert.Len(t, users, 2)
	assert.Equal(t, models.TierCritical, users[0].WorstTier)
	assert.Equal(t, 2, users[0].KeyCount)

	// bob's only key has no creation date: excluded, user stays compliant
	assert.True(t, users[1].Findings[0].Unparseable)
	assert.Equal(t, models.TierCompliant, users[1].WorstTier)

	account := SummarizeAccount(users, models.DefaultRiskPolicy())
	assert.Equal(t, 3, account.TotalKeys)
	assert.Equal(t, 1, account.UnparseableKeys)
	assert.Equal(t, 1, account.CriticalKeys)
	assert.Equal(t, 1, account.CompliantKeys)
	assert.Equal(t, 50.0, account.ComplianceRate)
}
