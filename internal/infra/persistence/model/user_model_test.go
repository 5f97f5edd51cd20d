package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserModel_BeforeCreate(t *testing.T) {
	m := &UserModel{}
	require.NoError(t, m.BeforeCreate(nil))
	assert.Equal(t, uuid.Version(7), m.ID.Version())

	fixed := uuid.New()
	m = &UserModel{ID: fixed}
	require.NoError(t, m.BeforeCreate(nil))
	assert.Equal(t, fixed, m.ID)
}

func TestUserModel_TableName(t *testing.T) {
	assert.Equal(t, "users", UserModel{}.TableName())
}
