// Package domain contains the core data types for the club site backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category classifies an event for styling and filtering.
type Category string

const (
	CategoryClimbing Category = "climbing"
	CategoryKayaking Category = "kayaking"
	CategorySkiing   Category = "skiing"
	CategoryHiking   Category = "hiking"
	CategorySocial   Category = "social"
	CategoryGeneral  Category = "general"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryClimbing, CategoryKayaking, CategorySkiing, CategoryHiking, CategorySocial, CategoryGeneral:
		return true
	}
	return false
}

// RegistrationMethod determines whether participants are auto-accepted in
// sign-up order or manually selected by the trip leader.
type RegistrationMethod string

const (
	RegistrationFCFS  RegistrationMethod = "fcfs"
	RegistrationPicky RegistrationMethod = "picky"
)

// Valid reports whether m is a known registration method.
func (m RegistrationMethod) Valid() bool {
	return m == RegistrationFCFS || m == RegistrationPicky
}

// ApprovalStatus governs whether a trip has been approved for publication.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

// Valid reports whether s is a known approval status.
func (s ApprovalStatus) Valid() bool {
	return s == ApprovalPending || s == ApprovalApproved
}

// Difficulty gives participants an idea of what a trip requires.
type Difficulty string

const (
	DifficultyNone     Difficulty = "none"
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
)

// Valid reports whether d is a known difficulty level.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyNone, DifficultyEasy, DifficultyModerate, DifficultyHard:
		return true
	}
	return false
}

// Event represents a club trip or event. It is the top-level aggregate;
// signups belong to an event.
//
// TripCapacity of -1 means unlimited. SpotsTotal and SpotsAvailable are
// legacy counters kept for display compatibility; nothing mutates them when
// a signup is created.
type Event struct {
	ID                      uuid.UUID          `json:"id"`
	Title                   string             `json:"title"`
	Slug                    string             `json:"slug"` // immutable once set, globally unique
	Category                Category           `json:"category"`
	Description             string             `json:"description"`
	MeetingDatetime         *time.Time         `json:"meeting_datetime,omitempty"` // optional pre-trip meeting
	MeetingLocation         string             `json:"meeting_location,omitempty"`
	EmergencyContactDetails string             `json:"emergency_contact_details,omitempty"`
	RegistrationMethod      RegistrationMethod `json:"registration_method"`
	TripCapacity            int                `json:"trip_capacity"`
	TripLocation            string             `json:"trip_location"`
	StartDatetime           time.Time          `json:"start_datetime"`
	EndDatetime             time.Time          `json:"end_datetime"`
	DifficultyLevel         Difficulty         `json:"difficulty_level"`
	EstimatedCosts          string             `json:"estimated_costs,omitempty"`
	RequestedInformation    string             `json:"requested_information,omitempty"`
	IncludePriorExperience  bool               `json:"include_prior_experience_checkbox"`
	RegularRecurring        bool               `json:"regular_recurring"`
	ApprovalStatus          ApprovalStatus     `json:"approval_status"`
	Comment                 string             `json:"comment,omitempty"`
	ContactDetails          string             `json:"contact_details"`
	FitnessRequired         string             `json:"fitness_required,omitempty"`
	ExperienceRequired      string             `json:"experience_required,omitempty"`
	SpotsTotal              int                `json:"spots_total"`
	SpotsAvailable          int                `json:"spots_available"`
	CreatedBy               *uuid.UUID         `json:"created_by,omitempty"` // nil when the creating account is gone
	CreatedAt               time.Time          `json:"created_at"`
	UpdatedAt               time.Time          `json:"updated_at"`
}

// IsFull reports whether the event is at capacity.
//
// An event is full when the number of available spots has reached zero and a
// non-zero total capacity has been defined. Events with unlimited capacity
// (SpotsTotal == 0) are never full regardless of SpotsAvailable.
func (e Event) IsFull() bool {
	return e.SpotsAvailable == 0 && e.SpotsTotal > 0
}

// SpotsDisplay returns the availability text shown on listings:
// "{available} / {total} spots left" while spots remain, "Full" otherwise.
func (e Event) SpotsDisplay() string {
	if e.IsFull() {
		return "Full"
	}
	return fmt.Sprintf("%d / %d spots left", e.SpotsAvailable, e.SpotsTotal)
}
