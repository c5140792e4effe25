package analyzer

import (
	"math"
	"time"

	"github.com/younsl/keyaudit/internal/models"
)

// AnalyzeInventory classifies every key in the inventory and rolls the
// findings up per user. Keys with unusable timestamps are kept as
// unparseable findings instead of aborting the run.
func AnalyzeInventory(inventory []models.UserKeys, now time.Time, policy models.RiskPolicy) []models.UserSummary {
	summaries := make([]models.UserSummary, 0, len(inventory))

	for _, user := range inventory {
		findings := make([]models.KeyFinding, 0, len(user.Keys))
		for _, key := range user.Keys {
			finding, _ := EvaluateKey(key, now, policy)
			findings = append(findings, finding)
		}
		summaries = append(summaries, SummarizeUser(user.UserName, findings))
	}

	return summaries
}

// SummarizeUser rolls per-key findings into a single user summary. The
// worst tier considers only parseable keys; a user with no keys (or only
// unparseable ones) is COMPLIANT.
func SummarizeUser(userName string, findings []models.KeyFinding) models.UserSummary {
	summary := models.UserSummary{
		UserName:  userName,
		KeyCount:  len(findings),
		Findings:  findings,
		WorstTier: models.TierCompliant,
	}

	for _, f := range findings {
		if f.Unparseable {
			continue
		}
		if f.Tier.WorseThan(summary.WorstTier) {
			summary.WorstTier = f.Tier
		}
	}

	return summary
}

// SummarizeAccount computes the account-wide rollup. Pure function: counts
// are plain sums over the user summaries and the compliance rate never
// divides by zero (an account with no countable keys is 100% compliant).
func SummarizeAccount(users []models.UserSummary, policy models.RiskPolicy) models.AccountSummary {
	summary := models.AccountSummary{
		TotalUsers: len(users),
	}

	for _, user := range users {
		if user.KeyCount > 0 {
			summary.UsersWithKeys++
		}
		summary.TotalKeys += user.KeyCount

		for _, f := range user.Findings {
			if f.Unparseable {
				summary.UnparseableKeys++
				continue
			}
			if f.NeverUsed() {
				summary.NeverUsedKeys++
			}
			switch f.Tier {
			case models.TierCritical:
				summary.CriticalKeys++
			case models.TierHigh:
				summary.HighRiskKeys++
			case models.TierMedium:
				summary.MediumRiskKeys++
			case models.TierLow:
				summary.LowRiskKeys++
			case models.TierCompliant:
				summary.CompliantKeys++
			}
		}
	}

	countable := summary.TotalKeys - summary.UnparseableKeys
	if countable > 0 {
		rate := 100 * float64(countable-summary.CriticalKeys-summary.HighRiskKeys) / float64(countable)
		summary.ComplianceRate = math.Round(rate*10) / 10
	} else {
		summary.ComplianceRate = 100.0
	}

	if summary.CriticalKeys == 0 && summary.ComplianceRate >= policy.ComplianceThreshold {
		summary.OverallStatus = models.StatusCompliant
	} else {
		summary.OverallStatus = models.StatusNonCompliant
	}

	return summary
}
