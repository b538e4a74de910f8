package types

import (
	"encoding/json"
	"time"
)

// ParticipantSource records how a participant entered the plan. It never
// affects allocation.
type ParticipantSource string

const (
	ParticipantSourceManual ParticipantSource = "manual"
	ParticipantSourceWeb    ParticipantSource = "web"
)

// Plan is a named event whose bill gets split. It owns its participants and
// amount items; the optional schedule event is a separate aggregate referenced
// by ID only.
type Plan struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	EventDate       time.Time               `json:"eventDate"`
	TotalAmount     int64                   `json:"totalAmount"`
	RoleOverrides   map[string]RoleOverride `json:"roleOverrides,omitempty"`
	ScheduleEventID *string                 `json:"scheduleEventId,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// RoleOverride shadows the registry's name/multiplier for one role within a
// single plan. Keys in Plan.RoleOverrides are standard role keys or custom
// role IDs.
type RoleOverride struct {
	Name       *string  `json:"name,omitempty"`
	Multiplier *float64 `json:"multiplier,omitempty"`
}

// UnmarshalRoleOverrides parses the JSONB role_overrides column.
func (p *Plan) UnmarshalRoleOverrides(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &p.RoleOverrides)
}

// AmountItem is a named line-item contributing to the plan total. Items do not
// map to specific participants; their sum is the authoritative total when any
// exist.
type AmountItem struct {
	ID       string `json:"id"`
	PlanID   string `json:"planId"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Position int    `json:"position"`
}

// Participant is one person on the bill. When UseFixedAmount is set, the
// allocation engine charges FixedAmount and ignores the role multiplier; when
// it is clear, FixedAmount may hold a stale value and is ignored.
type Participant struct {
	ID             string            `json:"id"`
	PlanID         string            `json:"planId"`
	Name           string            `json:"name"`
	Role           RoleRef           `json:"role"`
	UseFixedAmount bool              `json:"useFixedAmount"`
	FixedAmount    int64             `json:"fixedAmount"`
	Collected      bool              `json:"collected"`
	Source         ParticipantSource `json:"source"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// API request types

type PlanCreate struct {
	Name            string    `json:"name" binding:"required,max=200"`
	EventDate       time.Time `json:"eventDate" binding:"required"`
	TotalAmount     int64     `json:"totalAmount" binding:"gte=0"`
	ScheduleEventID *string   `json:"scheduleEventId,omitempty"`
}

type PlanUpdate struct {
	Name            *string                 `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	EventDate       *time.Time              `json:"eventDate,omitempty"`
	RoleOverrides   map[string]RoleOverride `json:"roleOverrides,omitempty"`
	ScheduleEventID *string                 `json:"scheduleEventId,omitempty"`
}

// AmountItemInput is one line-item in an amount update.
type AmountItemInput struct {
	Name   string `json:"name" binding:"required,max=200"`
	Amount int64  `json:"amount" binding:"gte=0"`
}

// PlanAmountUpdate replaces a plan's amount specification: either a single
// total or an item list whose sum becomes the total. Supplying both is a
// validation error; the item sum always wins over a stored total.
type PlanAmountUpdate struct {
	Total *int64            `json:"total,omitempty" binding:"omitempty,gte=0"`
	Items []AmountItemInput `json:"items,omitempty"`
}

type ParticipantCreate struct {
	Name           string            `json:"name" binding:"required,max=100"`
	Role           RoleRef           `json:"role"`
	UseFixedAmount bool              `json:"useFixedAmount"`
	FixedAmount    int64             `json:"fixedAmount" binding:"gte=0"`
	Source         ParticipantSource `json:"source,omitempty"`
}

type ParticipantUpdate struct {
	Name           *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Role           *RoleRef `json:"role,omitempty"`
	UseFixedAmount *bool    `json:"useFixedAmount,omitempty"`
	FixedAmount    *int64   `json:"fixedAmount,omitempty" binding:"omitempty,gte=0"`
	Collected      *bool    `json:"collected,omitempty"`
}

// API response types

type PlanResponse struct {
	Plan
	Participants []*Participant `json:"participants"`
	Items        []*AmountItem  `json:"items"`
}

// ParticipantCharge is one row of an allocation result.
type ParticipantCharge struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	Amount        int64  `json:"amount"`
	Fixed         bool   `json:"fixed"`
}

// AllocationResponse is the full allocation result for a plan. Unallocated is
// zero unless every proportional weight was zero, in which case it carries the
// remainder the caller must decide how to present.
type AllocationResponse struct {
	PlanID      string              `json:"planId"`
	Total       int64               `json:"total"`
	Charges     []ParticipantCharge `json:"charges"`
	Unallocated int64               `json:"unallocated,omitempty"`
}
