package domain

import (
	"time"

	"github.com/google/uuid"
)

type SkillLevel string

const (
	SkillLevelA SkillLevel = "A"
	SkillLevelB SkillLevel = "B"
	SkillLevelC SkillLevel = "C"
	SkillLevelD SkillLevel = "D"
	SkillLevelE SkillLevel = "E"
	SkillLevelF SkillLevel = "F"
)

// DefaultSkillLevel is what the client form starts with. The server never
// applies it on its own.
const DefaultSkillLevel = SkillLevelF

var skillLabels = map[SkillLevel]string{
	SkillLevelA: "A (highest)",
	SkillLevelB: "B (high)",
	SkillLevelC: "C (medium)",
	SkillLevelD: "D (low)",
	SkillLevelE: "E (lowest)",
	SkillLevelF: "F (beginner)",
}

// SkillLevels returns all levels from best to beginner.
func SkillLevels() []SkillLevel {
	return []SkillLevel{SkillLevelA, SkillLevelB, SkillLevelC, SkillLevelD, SkillLevelE, SkillLevelF}
}

func (s SkillLevel) Valid() bool {
	_, ok := skillLabels[s]
	return ok
}

func (s SkillLevel) Label() string {
	if l, ok := skillLabels[s]; ok {
		return l
	}
	return string(s)
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	SkillLevel   SkillLevel `json:"skillLevel"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// UserResponse is the outward view of a user. It has no password field at all.
type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	SkillLevel SkillLevel `json:"skillLevel"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		SkillLevel: u.SkillLevel,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type CreateUserInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	SkillLevel string `json:"skillLevel"`
}

// UpdateUserInput carries a partial update. A nil field is left unchanged.
type UpdateUserInput struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Password   *string `json:"password,omitempty"`
	SkillLevel *string `json:"skillLevel,omitempty"`
}

// UserPatch is the storage-level partial update. Password never reaches
// storage, only its hash.
type UserPatch struct {
	Name         *string
	Email        *string
	SkillLevel   *SkillLevel
	PasswordHash *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.SkillLevel == nil && p.PasswordHash == nil
}
