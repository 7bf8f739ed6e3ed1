package domain

type ShiftStatus string

const (
	ShiftStatusDraft     ShiftStatus = "draft"
	ShiftStatusPublished ShiftStatus = "published"
	ShiftStatusFilled    ShiftStatus = "filled"
	ShiftStatusCancelled ShiftStatus = "cancelled"
	ShiftStatusCompleted ShiftStatus = "completed"
)

func (s ShiftStatus) Valid() bool {
	switch s {
	case ShiftStatusDraft, ShiftStatusPublished, ShiftStatusFilled, ShiftStatusCancelled, ShiftStatusCompleted:
		return true
	}
	return false
}

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

var UrgencyLevels = []UrgencyLevel{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}

func (u UrgencyLevel) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// Urgent reports whether shifts at this level are flagged as urgent to workers.
func (u UrgencyLevel) Urgent() bool {
	return u == UrgencyHigh || u == UrgencyCritical
}

// DefaultBonus is the bonus percentage applied when a shift is created without one.
func (u UrgencyLevel) DefaultBonus() int {
	switch u {
	case UrgencyCritical:
		return 30
	case UrgencyHigh:
		return 15
	case UrgencyMedium:
		return 5
	default:
		return 0
	}
}
