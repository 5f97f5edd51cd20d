package entity

import "log/slog"

// Principal is the identity claim carried inside a bearer token.
type Principal struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Credential is a login attempt. It only lives for the duration of the request.
type Credential struct {
	Username string
	Password string
}

// LogValue keeps the password out of every log record.
func (c Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("password", "[REDACTED]"),
	)
}

// AuthStatus is the state of an authentication attempt.
type AuthStatus int

const (
	AuthPending AuthStatus = iota
	// AuthAccepted: the caller proved who they are.
	AuthAccepted
	// AuthRejected: the caller failed to prove it. Client-visible, 401.
	AuthRejected
	// AuthFailed: the attempt could not be evaluated (store down, hashing error).
	AuthFailed
)

func (s AuthStatus) String() string {
	switch s {
	case AuthPending:
		return "pending"
	case AuthAccepted:
		return "accepted"
	case AuthRejected:
		return "rejected"
	case AuthFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AuthResult is the outcome of an authentication strategy. Exactly one of
// the payload fields is meaningful, selected by Status.
type AuthResult struct {
	Status AuthStatus

	// Accepted. User is set by strategies that load the stored record.
	User      *User
	Principal Principal

	// Rejected.
	Reason error

	// Failed.
	Cause error
}

// Accepted builds a successful result for a stored user.
func Accepted(user *User) AuthResult {
	return AuthResult{Status: AuthAccepted, User: user, Principal: user.Principal()}
}

// AcceptedPrincipal builds a successful result carrying only a token claim.
func AcceptedPrincipal(p Principal) AuthResult {
	return AuthResult{Status: AuthAccepted, Principal: p}
}

// Rejected builds a result for a caller that failed to authenticate.
func Rejected(reason error) AuthResult {
	return AuthResult{Status: AuthRejected, Reason: reason}
}

// Failed builds a result for an attempt that could not be evaluated.
func Failed(cause error) AuthResult {
	return AuthResult{Status: AuthFailed, Cause: cause}
}
