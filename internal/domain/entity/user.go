// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultImage is the avatar assigned to users that never uploaded one.
const DefaultImage = "smiley.png"

// User is a directory member and the source of every login principal.
type User struct {
	ID           uuid.UUID
	Username     string // Unique, compared exactly.
	PasswordHash string // bcrypt output, never the plaintext.
	FirstName    string
	LastName     string
	Description  string
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the serialized form of a User. It has no password field.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
}

// Serialize returns the client-visible view of the user.
func (u *User) Serialize() PublicUser {
	image := u.Image
	if image == "" {
		image = DefaultImage
	}

	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Description: u.Description,
		Image:       image,
	}
}

// Principal derives the token identity claim from the user.
func (u *User) Principal() Principal {
	return Principal{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// UserUpdate carries the editable profile fields. Nil fields are left untouched.
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	Description *string
	Image       *string
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Description == nil && u.Image == nil
}

// Apply copies the present fields onto user.
func (u UserUpdate) Apply(user *User) {
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.Description != nil {
		user.Description = *u.Description
	}
	if u.Image != nil {
		user.Image = *u.Image
	}
}
