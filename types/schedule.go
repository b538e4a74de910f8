package types

import "time"

// ScheduleEvent is the date-voting aggregate a plan may reference. Candidate
// date-times are stored in submission order, not pre-sorted; the tally sorts
// only for display. Absent optional fields always sync to their defaults
// (empty string, empty list) rather than staying null downstream.
type ScheduleEvent struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Budget      *int64      `json:"budget,omitempty"`
	Candidates  []time.Time `json:"candidates"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ScheduleResponse is one respondent's availability for a schedule event.
type ScheduleResponse struct {
	ID            string            `json:"id"`
	EventID       string            `json:"eventId"`
	RespondentName string           `json:"respondentName"`
	Available     []time.Time       `json:"available"`
	Source        ParticipantSource `json:"source"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// API request types

type ScheduleEventCreate struct {
	Title       string      `json:"title" binding:"required,max=200"`
	Description string      `json:"description" binding:"max=2000"`
	Location    string      `json:"location" binding:"max=200"`
	Budget      *int64      `json:"budget,omitempty" binding:"omitempty,gte=0"`
	Candidates  []time.Time `json:"candidates"`
}

type ScheduleEventUpdate struct {
	Title       *string      `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string      `json:"description,omitempty" binding:"omitempty,max=2000"`
	Location    *string      `json:"location,omitempty" binding:"omitempty,max=200"`
	Budget      *int64       `json:"budget,omitempty" binding:"omitempty,gte=0"`
	Candidates  *[]time.Time `json:"candidates,omitempty"`
}

type ScheduleResponseCreate struct {
	RespondentName string            `json:"respondentName" binding:"required,max=100"`
	Available      []time.Time       `json:"available"`
	Source         ParticipantSource `json:"source,omitempty"`
}

type ScheduleResponseUpdate struct {
	RespondentName *string      `json:"respondentName,omitempty" binding:"omitempty,min=1,max=100"`
	Available      *[]time.Time `json:"available,omitempty"`
}

// API response types

// CandidateTally is one candidate's vote count, in chronological display order.
type CandidateTally struct {
	Candidate time.Time `json:"candidate"`
	Votes     int       `json:"votes"`
}

// TallyResponse is the full vote tally for a schedule event. Every candidate
// appears in Counts, zero-voted ones included; Leading holds every candidate
// tied at MaxVotes when MaxVotes is positive.
type TallyResponse struct {
	EventID  string           `json:"eventId"`
	Counts   []CandidateTally `json:"counts"`
	MaxVotes int              `json:"maxVotes"`
	Leading  []time.Time      `json:"leading"`
}
