// Package analyzer holds the access key risk classification and
// aggregation rules. Everything here is a pure function of its inputs:
// the current time and the risk policy are passed in, never read from
// globals, so a snapshot always classifies the same way.
package analyzer

import (
	"fmt"
	"time"

	"github.com/younsl/keyaudit/internal/models"
	"github.com/younsl/keyaudit/pkg/utils"
)

// DataError indicates a single key's timestamps were unusable. The key is
// excluded from tier counts and reported as unparseable; the run continues.
type DataError struct {
	KeyID string
	Err   error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("unparseable key %s: %v", e.KeyID, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// EvaluateKey classifies one access key snapshot against the policy.
// Rules are evaluated in priority order; a key may trigger several rules
// and the reported tier is the worst severity among them. A missing
// creation date returns a *DataError alongside an unparseable finding.
func EvaluateKey(key models.AccessKey, now time.Time, policy models.RiskPolicy) (models.KeyFinding, error) {
	finding := models.KeyFinding{
		Key:              key,
		DaysSinceLastUse: -1,
	}

	if key.CreateDate == nil {
		finding.Tier = models.TierUnparseable
		finding.Unparseable = true
		return finding, &DataError{KeyID: key.KeyID, Err: fmt.Errorf("missing creation date")}
	}

	finding.AgeDays = utils.DaysBetween(*key.CreateDate, now)

	if key.LastUsedDate != nil {
		idle := utils.DaysBetween(*key.LastUsedDate, now)
		if idle < 0 {
			// AWS reports last-used at day granularity; a timestamp
			// slightly ahead of the scan clock counts as used today.
			idle = 0
		}
		finding.DaysSinceLastUse = idle
	}

	switch {
	case finding.NeverUsed() && finding.AgeDays > policy.StaleDays:
		finding.Tier = models.TierCritical
		finding.Findings = append(finding.Findings,
			fmt.Sprintf("unused key older than %d days", policy.StaleDays))

	case finding.NeverUsed():
		finding.Tier = models.TierHigh
		finding.Findings = append(finding.Findings, "unused new key")

	case finding.DaysSinceLastUse > policy.StaleDays:
		finding.Tier = models.TierHigh
		finding.Findings = append(finding.Findings,
			fmt.Sprintf("stale key, inactive > %d days", policy.StaleDays))

	case finding.DaysSinceLastUse >= policy.InfrequentDays:
		finding.Tier = models.TierMedium
		finding.Findings = append(finding.Findings, "infrequently used")

	default:
		finding.Tier = models.TierCompliant
	}

	// Rotation policy applies regardless of use and escalates to at least HIGH.
	if finding.AgeDays > policy.MaxAgeDays {
		finding.Findings = append(finding.Findings, "exceeds annual rotation policy")
		if models.TierHigh.WorseThan(finding.Tier) {
			finding.Tier = models.TierHigh
		}
	}

	return finding, nil
}
