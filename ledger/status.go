package ledger

import "time"

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// DeriveStatus is never stored. endTime is inclusive.
func DeriveStatus(isActive bool, startTime, endTime, now int64) Status {
	if now < startTime {
		return StatusUpcoming
	}
	if isActive && now <= endTime {
		return StatusActive
	}
	return StatusCompleted
}

// IsOpen reports whether a vote accepts ballots at now.
func IsOpen(isActive bool, startTime, endTime, now int64) bool {
	return isActive && now >= startTime && now <= endTime
}

func (v *Vote) Status(now time.Time) Status {
	return DeriveStatus(v.IsActive, v.StartTime, v.EndTime, now.Unix())
}
