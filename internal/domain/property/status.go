package property

import "strings"

// UnitStatus is the lifecycle state of a unit
type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "available"
	UnitStatusOccupied    UnitStatus = "occupied"
	UnitStatusMaintenance UnitStatus = "maintenance"
	UnitStatusReserved    UnitStatus = "reserved"
	UnitStatusSold        UnitStatus = "sold"
	UnitStatusBlocked     UnitStatus = "blocked"
)

// AllUnitStatuses lists every status in board column order
func AllUnitStatuses() []UnitStatus {
	return []UnitStatus{
		UnitStatusAvailable,
		UnitStatusOccupied,
		UnitStatusMaintenance,
		UnitStatusReserved,
		UnitStatusSold,
		UnitStatusBlocked,
	}
}

// IsValid checks if the status is one of the known unit statuses
func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitStatusAvailable, UnitStatusOccupied, UnitStatusMaintenance,
		UnitStatusReserved, UnitStatusSold, UnitStatusBlocked:
		return true
	}
	return false
}

// String returns the string representation of UnitStatus
func (s UnitStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether a unit in s may move to target.
// Every known status may follow every other one, including itself.
func (s UnitStatus) CanTransitionTo(target UnitStatus) bool {
	return s.IsValid() && target.IsValid()
}

// ParseUnitStatus normalizes raw input and rejects unknown values
func ParseUnitStatus(raw string) (UnitStatus, error) {
	s := UnitStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", invalidStatusError(raw)
	}
	return s, nil
}
