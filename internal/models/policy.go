package models

// RiskPolicy holds the day thresholds and compliance floor used by the
// classifier and aggregator. The zero value is not usable; start from
// DefaultRiskPolicy and override individual fields.
type RiskPolicy struct {
	StaleDays           int     // Inactivity (or unused age) beyond this is stale
	InfrequentDays      int     // Inactivity at or beyond this is infrequent use
	MaxAgeDays          int     // Keys older than this violate the rotation policy
	ComplianceThreshold float64 // Minimum compliance rate (percent) for a COMPLIANT verdict
}

// DefaultRiskPolicy returns the reference policy: 90 days stale, 30 days
// infrequent, 365 days maximum age, 90% compliance floor.
func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		StaleDays:           90,
		InfrequentDays:      30,
		MaxAgeDays:          365,
		ComplianceThreshold: 90.0,
	}
}
