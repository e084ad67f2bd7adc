package models

import (
	"math"
	"time"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusBlocked    = "Blocked"
	StatusDeferred   = "Deferred"
)

const (
	ImpactOnTrack = "On Track"
	ImpactWarning = "Warning"
	ImpactProblem = "Problem"
)

const (
	Yes = "Yes"
	No  = "No"
)

// Priorities lists priority labels in ascending order.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

var Statuses = []string{StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked, StatusDeferred}

var Impacts = []string{ImpactOnTrack, ImpactWarning, ImpactProblem}

type Person struct {
	ID            int64
	Name          string
	Email         string
	Role          string
	AssignedHours int // cached sum of assignment hours
	CreatedAt     time.Time
}

type Assignment struct {
	ID                     int64
	ProjectName            string
	PersonID               *int64 // nil when unassigned
	ClientCountry          string
	ServiceLine            string
	ResourceAvailableLocal string
	Activity               string
	PartnersNeeded         string
	StartDate              *time.Time
	EndDate                *time.Time
	Hours                  int
	Priority               string
	Status                 string
	Impact                 string
	Comments               string
	CreatedAt              time.Time

	// Joined fields
	PersonName string
}

type LeaveBalance struct {
	PersonID             int64
	PreviousYearBalance  float64
	CurrentYearAllocated float64
	CurrentYearTaken     float64
}

// CurrentYearBalance is allocated minus taken for the current year.
func (l LeaveBalance) CurrentYearBalance() float64 {
	return l.CurrentYearAllocated - l.CurrentYearTaken
}

// PercentTaken is the rounded share of the allocation already taken.
// ok is false when nothing is allocated and the percentage is undefined.
func (l LeaveBalance) PercentTaken() (pct int, ok bool) {
	if l.CurrentYearAllocated <= 0 {
		return 0, false
	}
	return int(math.Round(l.CurrentYearTaken / l.CurrentYearAllocated * 100)), true
}

// PercentBalance is 100 minus PercentTaken, with the same undefined case.
func (l LeaveBalance) PercentBalance() (pct int, ok bool) {
	taken, ok := l.PercentTaken()
	if !ok {
		return 0, false
	}
	return 100 - taken, true
}
