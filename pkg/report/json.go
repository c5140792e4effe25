// Package report serializes audit results to the JSON and CSV compliance
// report files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younsl/keyaudit/internal/models"
)

// Report is the top-level JSON document.
type Report struct {
	ComplianceAssessment Assessment  `json:"compliance_assessment"`
	AccountID            string      `json:"account_id"`
	GeneratedAt          string      `json:"generated_at"`
	Summary              Summary     `json:"summary"`
	Details              []KeyDetail `json:"details"`
}

// Assessment carries the overall verdict and the threshold it was judged
// against.
type Assessment struct {
	OverallStatus       string  `json:"overall_status"`
	ComplianceThreshold float64 `json:"compliance_threshold"`
}

// Summary mirrors models.AccountSummary.
type Summary struct {
	TotalUsers      int     `json:"total_users"`
	UsersWithKeys   int     `json:"users_with_keys"`
	TotalKeys       int     `json:"total_keys"`
	CriticalKeys    int     `json:"critical_keys"`
	HighRiskKeys    int     `json:"high_risk_keys"`
	MediumRiskKeys  int     `json:"medium_risk_keys"`
	LowRiskKeys     int     `json:"low_risk_keys"`
	CompliantKeys   int     `json:"compliant_keys"`
	NeverUsedKeys   int     `json:"never_used_keys"`
	UnparseableKeys int     `json:"unparseable_keys"`
	ComplianceRate  float64 `json:"compliance_rate"`
}

// KeyDetail is one per-key finding row.
type KeyDetail struct {
	UserName        string   `json:"user_name"`
	AccessKeyID     string   `json:"access_key_id"`
	Status          string   `json:"status"`
	AgeDays         int      `json:"age_days"`
	LastUsed        string   `json:"last_used"`
	LastUsedService string   `json:"last_used_service,omitempty"`
	RiskTier        string   `json:"risk_tier"`
	Findings        []string `json:"findings"`
}

// Build assembles the JSON document from the aggregated results.
func Build(accountID string, generatedAt time.Time, users []models.UserSummary, account models.AccountSummary, policy models.RiskPolicy) Report {
	report := Report{
		ComplianceAssessment: Assessment{
			OverallStatus:       account.OverallStatus,
			ComplianceThreshold: policy.ComplianceThreshold,
		},
		AccountID:   accountID,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Summary: Summary{
			TotalUsers:      account.TotalUsers,
			UsersWithKeys:   account.UsersWithKeys,
			TotalKeys:       account.TotalKeys,
			CriticalKeys:    account.CriticalKeys,
			HighRiskKeys:    account.HighRiskKeys,
			MediumRiskKeys:  account.MediumRiskKeys,
			LowRiskKeys:     account.LowRiskKeys,
			CompliantKeys:   account.CompliantKeys,
			NeverUsedKeys:   account.NeverUsedKeys,
			UnparseableKeys: account.UnparseableKeys,
			ComplianceRate:  account.ComplianceRate,
		},
		Details: []KeyDetail{},
	}

	for _, user := range users {
		for _, f := range user.Findings {
			report.Details = append(report.Details, newKeyDetail(f))
		}
	}

	return report
}

func newKeyDetail(f models.KeyFinding) KeyDetail {
	lastUsed := "never"
	if f.Key.LastUsedDate != nil {
		lastUsed = f.Key.LastUsedDate.UTC().Format(time.RFC3339)
	}

	findings := f.Findings
	if findings == nil {
		findings = []string{}
	}

	return KeyDetail{
		UserName:        f.Key.UserName,
		AccessKeyID:     f.Key.KeyID,
		Status:          f.Key.Status,
		AgeDays:         f.AgeDays,
		LastUsed:        lastUsed,
		LastUsedService: f.Key.LastUsedService,
		RiskTier:        string(f.Tier),
		Findings:        findings,
	}
}

// WriteJSON writes the report to path with two-space indentation.
func WriteJSON(path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting JSON report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing JSON report to %s: %w", path, err)
	}

	return nil
}
