package docs

import (
	"time"
)

// This file contains models used by Swagger documentation
// It doesn't affect the actual application logic, just documentation

// ErrorResponse represents an error response
// @Description Error information
type ErrorResponse struct {
	// Error type
	Type string `json:"type" example:"VALIDATION_ERROR"`

	// Error message
	Message string `json:"message" example:"Invalid request parameters"`

	// HTTP status code
	Code int `json:"code" example:"400"`

	// Detailed error information
	Details string `json:"details,omitempty" example:"Field 'name' is required"`
}

// StatusResponse is a simple confirmation message
type StatusResponse struct {
	Message string `json:"message" example:"Plan deleted successfully"`
}

// RoleRef identifies either a standard or a custom role
// @Description Role reference carried by a participant
type RoleRef struct {
	// Role kind: standard or custom
	Kind string `json:"kind" example:"standard"`

	// Standard role key, set when kind is standard
	StandardKey string `json:"standardKey,omitempty" example:"organizer"`

	// Custom role ID, set when kind is custom
	CustomID string `json:"customId,omitempty" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
}

// RoleOverride shadows a role's name or multiplier within a single plan
type RoleOverride struct {
	Name       *string  `json:"name,omitempty" example:"Host"`
	Multiplier *float64 `json:"multiplier,omitempty" example:"2.0"`
}

// PlanCreateRequest is the payload for creating a plan
type PlanCreateRequest struct {
	// Plan name
	Name string `json:"name" binding:"required" example:"Year-end party"`

	// When the event takes place
	EventDate time.Time `json:"eventDate" binding:"required" example:"2026-12-18T19:00:00Z"`

	// Initial total amount in the smallest currency unit
	TotalAmount int64 `json:"totalAmount" example:"30000"`

	// Optional schedule event this plan was created from
	ScheduleEventID *string `json:"scheduleEventId,omitempty"`
}

// PlanUpdateRequest is the payload for updating a plan
type PlanUpdateRequest struct {
	Name            *string                 `json:"name,omitempty" example:"Year-end party (rescheduled)"`
	EventDate       *time.Time              `json:"eventDate,omitempty"`
	RoleOverrides   map[string]RoleOverride `json:"roleOverrides,omitempty"`
	ScheduleEventID *string                 `json:"scheduleEventId,omitempty"`
}

// PlanAmountRequest replaces a plan's amount specification
// @Description Either a single total or a list of items; not both
type PlanAmountRequest struct {
	// Single total amount
	Total *int64 `json:"total,omitempty" example:"30000"`

	// Itemized amounts; their sum becomes the plan total
	Items []AmountItemInput `json:"items,omitempty"`
}

// AmountItemInput is one line-item in an amount update
type AmountItemInput struct {
	Name   string `json:"name" binding:"required" example:"Dinner course"`
	Amount int64  `json:"amount" example:"25000"`
}

// AmountItem is one stored line-item of a plan
type AmountItem struct {
	ID       string `json:"id"`
	PlanID   string `json:"planId"`
	Name     string `json:"name" example:"Dinner course"`
	Amount   int64  `json:"amount" example:"25000"`
	Position int    `json:"position" example:"0"`
}

// PlanResponse is a plan without its collections
// @Description Plan information
type PlanResponse struct {
	ID              string                  `json:"id" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Name            string                  `json:"name" example:"Year-end party"`
	EventDate       time.Time               `json:"eventDate"`
	TotalAmount     int64                   `json:"totalAmount" example:"30000"`
	RoleOverrides   map[string]RoleOverride `json:"roleOverrides,omitempty"`
	ScheduleEventID *string                 `json:"scheduleEventId,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// PlanDetailResponse is a plan with its participants and amount items
type PlanDetailResponse struct {
	PlanResponse
	Participants []ParticipantResponse `json:"participants"`
	Items        []AmountItem          `json:"items"`
}

// PlanListResponse is a page of plans
type PlanListResponse struct {
	Plans  []PlanResponse `json:"plans"`
	Total  int            `json:"total" example:"12"`
	Limit  int            `json:"limit" example:"50"`
	Offset int            `json:"offset" example:"0"`
}

// ParticipantCreateRequest is the payload for adding a participant
type ParticipantCreateRequest struct {
	// Participant name
	Name string `json:"name" binding:"required" example:"Sato"`

	// Role reference; defaults to the standard member role
	Role RoleRef `json:"role"`

	// Charge a fixed amount instead of a proportional share
	UseFixedAmount bool `json:"useFixedAmount" example:"false"`

	// Fixed amount, meaningful only when useFixedAmount is set
	FixedAmount int64 `json:"fixedAmount" example:"0"`

	// How the participant entered the plan: manual or web
	Source string `json:"source,omitempty" example:"manual"`
}

// ParticipantUpdateRequest is the payload for updating a participant
type ParticipantUpdateRequest struct {
	Name           *string  `json:"name,omitempty" example:"Sato"`
	Role           *RoleRef `json:"role,omitempty"`
	UseFixedAmount *bool    `json:"useFixedAmount,omitempty"`
	FixedAmount    *int64   `json:"fixedAmount,omitempty" example:"5000"`
	Collected      *bool    `json:"collected,omitempty"`
}

// ParticipantResponse is one person on the bill
// @Description Participant information
type ParticipantResponse struct {
	ID             string    `json:"id"`
	PlanID         string    `json:"planId"`
	Name           string    `json:"name" example:"Sato"`
	Role           RoleRef   `json:"role"`
	UseFixedAmount bool      `json:"useFixedAmount"`
	FixedAmount    int64     `json:"fixedAmount"`
	Collected      bool      `json:"collected"`
	Source         string    `json:"source" example:"manual"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ParticipantCharge is one row of an allocation result
type ParticipantCharge struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name" example:"Sato"`
	Amount        int64  `json:"amount" example:"5000"`
	Fixed         bool   `json:"fixed" example:"false"`
}

// AllocationResponse is the computed split for a plan
// @Description Per-participant charges summing to the plan total
type AllocationResponse struct {
	PlanID      string              `json:"planId"`
	Total       int64               `json:"total" example:"30000"`
	Charges     []ParticipantCharge `json:"charges"`
	Unallocated int64               `json:"unallocated,omitempty" example:"0"`
}

// RoleViewResponse is one merged role registry entry
// @Description Standard settings and custom roles flattened into one list
type RoleViewResponse struct {
	Kind        string  `json:"kind" example:"standard"`
	StandardKey string  `json:"standardKey,omitempty" example:"organizer"`
	CustomID    string  `json:"customId,omitempty"`
	Name        string  `json:"name" example:"Organizer"`
	Multiplier  float64 `json:"multiplier" example:"1.5"`
}

// RoleSettingUpdateRequest edits a standard role's name or multiplier
type RoleSettingUpdateRequest struct {
	Name       *string  `json:"name,omitempty" example:"Kanji"`
	Multiplier *float64 `json:"multiplier,omitempty" example:"2.0"`
}

// RoleSettingResponse is the current registry row for a standard role
type RoleSettingResponse struct {
	Key        string    `json:"key" example:"organizer"`
	Name       string    `json:"name" example:"Organizer"`
	Multiplier float64   `json:"multiplier" example:"1.5"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CustomRoleCreateRequest creates a user-defined role
type CustomRoleCreateRequest struct {
	Name string `json:"name" binding:"required" example:"Designated driver"`

	// Defaults to 1.0 when omitted
	Multiplier *float64 `json:"multiplier,omitempty" example:"0.5"`
}

// CustomRoleUpdateRequest updates a user-defined role
type CustomRoleUpdateRequest struct {
	Name       *string  `json:"name,omitempty" example:"Designated driver"`
	Multiplier *float64 `json:"multiplier,omitempty" example:"0.0"`
}

// CustomRoleResponse is a user-defined role
type CustomRoleResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" example:"Designated driver"`
	Multiplier float64   `json:"multiplier" example:"0.5"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ScheduleEventCreateRequest creates a date-voting event
type ScheduleEventCreateRequest struct {
	Title       string      `json:"title" binding:"required" example:"Autumn offsite"`
	Description string      `json:"description" example:"Two-day team offsite"`
	Location    string      `json:"location" example:"Hakone"`
	Budget      *int64      `json:"budget,omitempty" example:"20000"`
	Candidates  []time.Time `json:"candidates"`
}

// ScheduleEventUpdateRequest updates a date-voting event
type ScheduleEventUpdateRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Budget      *int64       `json:"budget,omitempty"`
	Candidates  *[]time.Time `json:"candidates,omitempty"`
}

// ScheduleEventResponse is a date-voting event
// @Description Schedule event information
type ScheduleEventResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title" example:"Autumn offsite"`
	Description string      `json:"description"`
	Location    string      `json:"location" example:"Hakone"`
	Budget      *int64      `json:"budget,omitempty"`
	Candidates  []time.Time `json:"candidates"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ScheduleResponseCreateRequest records a respondent's availability
type ScheduleResponseCreateRequest struct {
	RespondentName string      `json:"respondentName" binding:"required" example:"Sato"`
	Available      []time.Time `json:"available"`
	Source         string      `json:"source,omitempty" example:"web"`
}

// ScheduleResponseUpdateRequest updates a recorded response
type ScheduleResponseUpdateRequest struct {
	RespondentName *string      `json:"respondentName,omitempty"`
	Available      *[]time.Time `json:"available,omitempty"`
}

// ScheduleResponseResponse is one respondent's availability
type ScheduleResponseResponse struct {
	ID             string      `json:"id"`
	EventID        string      `json:"eventId"`
	RespondentName string      `json:"respondentName" example:"Sato"`
	Available      []time.Time `json:"available"`
	Source         string      `json:"source" example:"web"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// CandidateTally is one candidate's vote count
type CandidateTally struct {
	Candidate time.Time `json:"candidate"`
	Votes     int       `json:"votes" example:"3"`
}

// TallyResponse is the vote tally for a schedule event
// @Description Vote counts per candidate plus the leading candidates
type TallyResponse struct {
	EventID  string           `json:"eventId"`
	Counts   []CandidateTally `json:"counts"`
	MaxVotes int              `json:"maxVotes" example:"3"`
	Leading  []time.Time      `json:"leading"`
}
