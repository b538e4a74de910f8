package types

import "time"

// RoleKind discriminates the two role variants a participant can reference.
type RoleKind string

const (
	RoleKindStandard RoleKind = "standard"
	RoleKindCustom   RoleKind = "custom"
)

// StandardRoleKey identifies one of the closed set of built-in roles. Keys are
// stable; names and multipliers are editable through the registry.
type StandardRoleKey string

const (
	RoleOrganizer StandardRoleKey = "organizer"
	RoleSenior    StandardRoleKey = "senior"
	RoleMember    StandardRoleKey = "member"
	RoleJunior    StandardRoleKey = "junior"
	RoleGuest     StandardRoleKey = "guest"
)

// StandardRoleKeys lists every built-in role key in display order.
var StandardRoleKeys = []StandardRoleKey{
	RoleOrganizer, RoleSenior, RoleMember, RoleJunior, RoleGuest,
}

// RoleSetting is the registry row for a standard role: its current display
// name and multiplier. A multiplier of 1.0 means "pays a full share".
type RoleSetting struct {
	Key        StandardRoleKey `json:"key"`
	Name       string          `json:"name"`
	Multiplier float64         `json:"multiplier"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// DefaultRoleSettings returns the shipped registry defaults, used until a
// setting is edited and as the fallback when a row is missing.
func DefaultRoleSettings() map[StandardRoleKey]RoleSetting {
	return map[StandardRoleKey]RoleSetting{
		RoleOrganizer: {Key: RoleOrganizer, Name: "Organizer", Multiplier: 1.5},
		RoleSenior:    {Key: RoleSenior, Name: "Senior", Multiplier: 1.2},
		RoleMember:    {Key: RoleMember, Name: "Member", Multiplier: 1.0},
		RoleJunior:    {Key: RoleJunior, Name: "Junior", Multiplier: 0.5},
		RoleGuest:     {Key: RoleGuest, Name: "Guest", Multiplier: 1.0},
	}
}

// IsValidStandardRoleKey reports whether key belongs to the closed set.
func IsValidStandardRoleKey(key StandardRoleKey) bool {
	for _, k := range StandardRoleKeys {
		if k == key {
			return true
		}
	}
	return false
}

// CustomRole is a user-created role with its own multiplier.
type CustomRole struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Multiplier float64   `json:"multiplier"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RoleRef is the tagged union a participant carries: exactly one of
// StandardKey or CustomID is meaningful depending on Kind. Resolution to an
// effective multiplier happens through a single registry lookup at allocation
// time, never cached on the participant.
type RoleRef struct {
	Kind        RoleKind        `json:"kind"`
	StandardKey StandardRoleKey `json:"standardKey,omitempty"`
	CustomID    string          `json:"customId,omitempty"`
}

// RoleView is one merged registry entry for API responses: standard settings
// and custom roles flattened into a single list.
type RoleView struct {
	Kind        RoleKind        `json:"kind"`
	StandardKey StandardRoleKey `json:"standardKey,omitempty"`
	CustomID    string          `json:"customId,omitempty"`
	Name        string          `json:"name"`
	Multiplier  float64         `json:"multiplier"`
}

// API request types

type RoleSettingUpdate struct {
	Name       *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Multiplier *float64 `json:"multiplier,omitempty" binding:"omitempty,gte=0"`
}

type CustomRoleCreate struct {
	Name       string   `json:"name" binding:"required,max=100"`
	Multiplier *float64 `json:"multiplier,omitempty" binding:"omitempty,gte=0"`
}

type CustomRoleUpdate struct {
	Name       *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Multiplier *float64 `json:"multiplier,omitempty" binding:"omitempty,gte=0"`
}
