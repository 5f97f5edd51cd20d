package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "folks/internal/domain/errors"
)

func requireValidationError(t *testing.T, err error, location, message string) {
	t.Helper()

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, location, verr.Location())
	assert.Equal(t, message, verr.Message())
	assert.Equal(t, 422, verr.HTTPCode())
	assert.False(t, verr.IsConflict())
}

func TestRegistrationRules_Order(t *testing.T) {
	assert.Equal(t, []string{"required", "type", "trim", "size"}, RegistrationRules().Names())
}

func TestValidateRegistration_Valid(t *testing.T) {
	reg, err := ValidateRegistration(Payload{
		"username":  "alice",
		"password":  "goodpassword1",
		"firstName": " Bo ",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", reg.Username)
	assert.Equal(t, "goodpassword1", reg.Password)
	assert.Equal(t, "Bo", reg.FirstName)
	assert.Empty(t, reg.LastName)
}

func TestValidateRegistration_Failures(t *testing.T) {
	tests := []struct {
		name     string
		payload  Payload
		location string
		message  string
	}{
		{
			name:     "empty payload reports username first",
			payload:  Payload{},
			location: "username",
			message:  MsgMissingField,
		},
		{
			name:     "missing password",
			payload:  Payload{"username": "alice"},
			location: "password",
			message:  MsgMissingField,
		},
		{
			name:     "missing beats wrong type",
			payload:  Payload{"username": 42},
			location: "password",
			message:  MsgMissingField,
		},
		{
			name:     "numeric username",
			payload:  Payload{"username": 42, "password": "goodpassword1"},
			location: "username",
			message:  MsgNotString,
		},
		{
			name:     "null counts as present but not a string",
			payload:  Payload{"username": nil, "password": "goodpassword1"},
			location: "username",
			message:  MsgNotString,
		},
		{
			name:     "optional name with wrong type",
			payload:  Payload{"username": "alice", "password": "goodpassword1", "lastName": true},
			location: "lastName",
			message:  MsgNotString,
		},
		{
			name:     "leading space in username",
			payload:  Payload{"username": " bob", "password": "goodpassword1"},
			location: "username",
			message:  MsgSurroundingWS,
		},
		{
			name:     "trailing newline in password",
			payload:  Payload{"username": "bob", "password": "goodpassword1\n"},
			location: "password",
			message:  MsgSurroundingWS,
		},
		{
			name:     "short password",
			payload:  Payload{"username": "alice", "password": "short"},
			location: "password",
			message:  "Must be at least 10 characters long",
		},
		{
			name:     "empty username",
			payload:  Payload{"username": "", "password": "goodpassword1"},
			location: "username",
			message:  "Must be at least 1 characters long",
		},
		{
			name:     "long password",
			payload:  Payload{"username": "alice", "password": strings.Repeat("p", 73)},
			location: "password",
			message:  "Must be at most 72 characters long",
		},
		{
			name:     "multibyte password counted in bytes for the maximum",
			payload:  Payload{"username": "alice", "password": strings.Repeat("é", 40)},
			location: "password",
			message:  "Must be at most 72 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := ValidateRegistration(tt.payload)
			assert.Nil(t, reg)
			requireValidationError(t, err, tt.location, tt.message)
		})
	}
}

func TestTrimSpace(t *testing.T) {
	tests := map[string]string{
		" alice ":         "alice",
		"\ufeffalice":     "alice",
		"alice\u2028":     "alice",
		"\u00a0alice\t":   "alice",
		"\u3000alice\r\n": "alice",
		"\u0085alice":     "\u0085alice",
		"al ice":          "al ice",
	}

	for in, want := range tests {
		assert.Equal(t, want, TrimSpace(in), "%q", in)
	}
}

func TestTrimmed_ClientWhitespaceSet(t *testing.T) {
	_, err := ValidateRegistration(Payload{"username": "\ufeffalice", "password": "goodpassword1"})
	requireValidationError(t, err, "username", MsgSurroundingWS)

	reg, err := ValidateRegistration(Payload{"username": "alice\u0085", "password": "goodpassword1"})
	require.NoError(t, err)
	assert.Equal(t, "alice\u0085", reg.Username)
}

func TestSized_MinimumsBeforeMaximums(t *testing.T) {
	rule := Sized(
		Bound{Field: "a", Max: 3},
		Bound{Field: "b", Min: 5},
	)

	verr := rule.Check(Payload{"a": "toolong", "b": "x"})
	require.NotNil(t, verr)
	assert.Equal(t, "b", verr.Location())
}

func TestSized_CountsCharacters(t *testing.T) {
	rule := Sized(Bound{Field: "name", Min: 3, Max: 3})

	assert.Nil(t, rule.Check(Payload{"name": "żół"}))
	assert.NotNil(t, rule.Check(Payload{"name": "żó"}))
}

func TestPasswordBoundaries(t *testing.T) {
	for _, n := range []int{PasswordMinLength, PasswordMaxLength} {
		_, err := ValidateRegistration(Payload{"username": "alice", "password": strings.Repeat("x", n)})
		assert.NoError(t, err, "length %d", n)
	}
}

func TestValidateUpdate(t *testing.T) {
	update, err := ValidateUpdate(Payload{
		"firstName":   "  Ada ",
		"description": " keeps spaces ",
		"username":    "ignored",
		"password":    "ignored",
	})
	require.NoError(t, err)

	require.NotNil(t, update.FirstName)
	assert.Equal(t, "Ada", *update.FirstName)
	require.NotNil(t, update.Description)
	assert.Equal(t, " keeps spaces ", *update.Description)
	assert.Nil(t, update.LastName)
	assert.Nil(t, update.Image)
}

func TestValidateUpdate_WrongType(t *testing.T) {
	_, err := ValidateUpdate(Payload{"image": 7})
	requireValidationError(t, err, "image", MsgNotString)
}

func TestValidateUpdate_EmptyIsAllowed(t *testing.T) {
	update, err := ValidateUpdate(Payload{})
	require.NoError(t, err)
	assert.True(t, update.Empty())
}

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(`{"username":"alice","age":3}`))
	require.NoError(t, err)
	assert.Equal(t, "alice", p["username"])
	assert.InDelta(t, 3.0, p["age"], 0)

	_, err = Decode([]byte(`[1,2]`))
	assert.Error(t, err)

	_, err = Decode([]byte(`null`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{`))
	assert.Error(t, err)
}
