package models

import "time"

// RiskTier is the ordinal severity classification of an access key's
// compliance posture.
type RiskTier string

const (
	TierCritical    RiskTier = "CRITICAL"
	TierHigh        RiskTier = "HIGH"
	TierMedium      RiskTier = "MEDIUM"
	TierLow         RiskTier = "LOW"
	TierCompliant   RiskTier = "COMPLIANT"
	TierUnparseable RiskTier = "UNPARSEABLE"
)

// tierRank maps tiers to a comparable severity (higher is worse).
// UNPARSEABLE keys sit outside the severity ordering.
var tierRank = map[RiskTier]int{
	TierCompliant: 0,
	TierLow:       1,
	TierMedium:    2,
	TierHigh:      3,
	TierCritical:  4,
}

// Rank returns the numeric severity of the tier (higher is worse).
func (t RiskTier) Rank() int {
	return tierRank[t]
}

// WorseThan reports whether t is more severe than other.
func (t RiskTier) WorseThan(other RiskTier) bool {
	return t.Rank() > other.Rank()
}

// Overall compliance verdicts for the account.
const (
	StatusCompliant    = "COMPLIANT"
	StatusNonCompliant = "NON_COMPLIANT"
)

// Access key status values as reported by IAM.
const (
	KeyStatusActive   = "Active"
	KeyStatusInactive = "Inactive"
)

// AccessKey is an immutable snapshot of one IAM access key at scan time
type AccessKey struct {
	KeyID           string     // Access key ID (AKIA...)
	UserName        string     // IAM user that owns the key
	Status          string     // Active or Inactive
	CreateDate      *time.Time // When the key was created
	LastUsedDate    *time.Time // When the key was last used (nil = never used)
	LastUsedService string     // Service the key was last used against
}

// UserKeys pairs an IAM user with its access key snapshots.
type UserKeys struct {
	UserName string
	Keys     []AccessKey
}

// KeyFinding is the classification result for a single access key.
type KeyFinding struct {
	Key              AccessKey
	AgeDays          int      // Days since the key was created
	DaysSinceLastUse int      // Days since last use (-1 = never used)
	Tier             RiskTier // Worst severity among triggered rules
	Findings         []string // Names of the rules that triggered
	Unparseable      bool     // Key excluded because its timestamps were unusable
}

// NeverUsed reports whether the key has no recorded use.
func (f KeyFinding) NeverUsed() bool {
	return f.DaysSinceLastUse < 0
}

// UserSummary rolls up the findings for one IAM user.
type UserSummary struct {
	UserName  string
	KeyCount  int
	Findings  []KeyFinding
	WorstTier RiskTier
}

// AccountSummary is the account-wide rollup across all users.
type AccountSummary struct {
	TotalUsers      int
	UsersWithKeys   int
	TotalKeys       int
	CriticalKeys    int
	HighRiskKeys    int
	MediumRiskKeys  int
	LowRiskKeys     int
	CompliantKeys   int
	NeverUsedKeys   int
	UnparseableKeys int
	ComplianceRate  float64 // Percent of countable keys outside CRITICAL/HIGH
	OverallStatus   string  // COMPLIANT or NON_COMPLIANT
}
