package postgres

import (
	"testing"
	"time"

	"folks/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserMapping_RoundTrip(t *testing.T) {
	user := &entity.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
		LastName:     "Liddell",
		Description:  "curious",
		Image:        entity.DefaultImage,
	}

	m := fromUserDomain(user)
	m.CreatedAt = time.Unix(100, 0)
	m.UpdatedAt = time.Unix(200, 0)

	back := toUserDomain(m)
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	assert.Equal(t, user, back)

	assert.Nil(t, toUserDomain(nil))
	assert.Nil(t, fromUserDomain(nil))
}

func TestUpdateColumns(t *testing.T) {
	empty := ""
	image := "cat.png"

	assert.Empty(t, updateColumns(entity.UserUpdate{}))
	assert.Equal(t, map[string]any{
		"first_name": "",
		"image":      "cat.png",
	}, updateColumns(entity.UserUpdate{FirstName: &empty, Image: &image}))
}
