package validation

import "folks/internal/domain/entity"

const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldDescription = "description"
	FieldImage       = "image"

	UsernameMinLength = 1
	PasswordMinLength = 10
	// PasswordMaxLength is bcrypt's input limit; anything longer would be truncated.
	PasswordMaxLength = 72
)

var registrationRules = Chain{
	Required(FieldUsername, FieldPassword),
	StringTyped(FieldUsername, FieldPassword, FieldFirstName, FieldLastName),
	Trimmed(FieldUsername, FieldPassword),
	Sized(
		Bound{Field: FieldUsername, Min: UsernameMinLength},
		Bound{Field: FieldPassword, Min: PasswordMinLength, Max: PasswordMaxLength, MaxBytes: true},
	),
}

var updateRules = Chain{
	StringTyped(FieldFirstName, FieldLastName, FieldDescription, FieldImage),
}

// RegistrationRules returns the ordered registration chain.
func RegistrationRules() Chain {
	return registrationRules
}

// Registration is a registration payload that passed every rule.
type Registration struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// ValidateRegistration runs the registration chain. On success the optional
// name fields default to "" and are trimmed; unlike username and password they
// are accepted with surrounding whitespace.
func ValidateRegistration(p Payload) (*Registration, error) {
	if verr := registrationRules.Validate(p); verr != nil {
		return nil, verr
	}

	username, _ := p.String(FieldUsername)
	password, _ := p.String(FieldPassword)
	firstName, _ := p.String(FieldFirstName)
	lastName, _ := p.String(FieldLastName)

	return &Registration{
		Username:  username,
		Password:  password,
		FirstName: TrimSpace(firstName),
		LastName:  TrimSpace(lastName),
	}, nil
}

// ValidateUpdate checks a profile update and keeps only the editable fields
// that are present. Names are trimmed like at registration.
func ValidateUpdate(p Payload) (entity.UserUpdate, error) {
	if verr := updateRules.Validate(p); verr != nil {
		return entity.UserUpdate{}, verr
	}

	var update entity.UserUpdate
	if v, ok := p.String(FieldFirstName); ok {
		v = TrimSpace(v)
		update.FirstName = &v
	}
	if v, ok := p.String(FieldLastName); ok {
		v = TrimSpace(v)
		update.LastName = &v
	}
	if v, ok := p.String(FieldDescription); ok {
		update.Description = &v
	}
	if v, ok := p.String(FieldImage); ok {
		update.Image = &v
	}

	return update, nil
}
