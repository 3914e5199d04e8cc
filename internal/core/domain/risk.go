package domain

import (
	"github.com/google/uuid"
)

// RiskLevel is an ordinal risk classification.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Rank orders levels so they can be compared.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether l is as severe as other.
func (l RiskLevel) AtLeast(other RiskLevel) bool {
	return l.Rank() >= other.Rank()
}

// SecurityRiskSignal is computed per sensitive action and attached to audit
// events. It is not persisted on its own.
type SecurityRiskSignal struct {
	SubjectID     uuid.UUID `json:"subject_id"`
	IPChanged     bool      `json:"ip_changed"`
	DeviceChanged bool      `json:"device_changed"`
	MultipleIPs   bool      `json:"multiple_ips"`
	GeoMismatch   bool      `json:"geo_mismatch"`
	RiskLevel     RiskLevel `json:"risk_level"`
}

// Score weighs the boolean signals into an ordinal level.
// IP and device changes count 1, concurrent IPs and geo mismatch count 2.
func (s *SecurityRiskSignal) Score() RiskLevel {
	score := 0
	if s.IPChanged {
		score++
	}
	if s.DeviceChanged {
		score++
	}
	if s.MultipleIPs {
		score += 2
	}
	if s.GeoMismatch {
		score += 2
	}

	switch {
	case score >= 5:
		return RiskCritical
	case score >= 3:
		return RiskHigh
	case score >= 1:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskPolicy decides what happens to an action at a given risk level.
type RiskPolicy string

const (
	RiskPolicyAllow  RiskPolicy = "allow"
	RiskPolicyReject RiskPolicy = "reject"
	RiskPolicyStepUp RiskPolicy = "step_up"
)

// RiskObservation is what a request contributes to the signal collector.
type RiskObservation struct {
	SubjectID uuid.UUID
	IP        string
	DeviceID  string
	Country   string
}
