// Package validation checks raw registration and profile-update payloads
// before they reach storage.
//
// Checks are expressed as an ordered Chain of Rules. A chain stops at the
// first rule that fails and reports a single field, so the order of the rules
// is the order of precedence the client observes:
//
//	required -> string type -> surrounding whitespace -> minimum lengths -> maximum lengths
//
// Payloads are validated as decoded JSON objects rather than bound structs:
// "missing" and "present but not a string" are distinct failures that a typed
// struct cannot tell apart.
package validation
