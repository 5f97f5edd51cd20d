package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	domainerrors "folks/internal/domain/errors"
	"folks/internal/errors"
)

const (
	MsgMissingField  = "Missing field"
	MsgNotString     = "Incorrect field type: expected string"
	MsgSurroundingWS = "Cannot start or end with whitespace"
)

// Payload is a decoded JSON object.
type Payload map[string]any

// Decode parses body as a JSON object.
func Decode(body []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, errors.Wrap(err, "decode payload")
	}
	if p == nil {
		return nil, errors.New("payload must be a JSON object")
	}

	return p, nil
}

// String returns the field when it is present and a string.
func (p Payload) String(field string) (string, bool) {
	v, ok := p[field].(string)

	return v, ok
}

// Rule is one named step of a Chain. Check returns nil when the payload passes.
type Rule struct {
	Name  string
	Check func(Payload) *domainerrors.ValidationError
}

// Chain runs rules in order and stops at the first failure.
type Chain []Rule

// Validate returns the first failure, or nil.
func (c Chain) Validate(p Payload) *domainerrors.ValidationError {
	for _, rule := range c {
		if verr := rule.Check(p); verr != nil {
			return verr
		}
	}

	return nil
}

// Names lists the rules in evaluation order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, rule := range c {
		names[i] = rule.Name
	}

	return names
}

// Required fails on the first field that is absent from the payload.
// A present key with a null value counts as present.
func Required(fields ...string) Rule {
	return Rule{
		Name: "required",
		Check: func(p Payload) *domainerrors.ValidationError {
			for _, field := range fields {
				if _, ok := p[field]; !ok {
					return domainerrors.NewValidationError(field, MsgMissingField)
				}
			}

			return nil
		},
	}
}

// StringTyped fails on the first present field whose value is not a JSON string.
func StringTyped(fields ...string) Rule {
	return Rule{
		Name: "type",
		Check: func(p Payload) *domainerrors.ValidationError {
			for _, field := range fields {
				v, ok := p[field]
				if !ok {
					continue
				}
				if _, isString := v.(string); !isString {
					return domainerrors.NewValidationError(field, MsgNotString)
				}
			}

			return nil
		},
	}
}

// TrimSpace strips the whitespace set JSON clients trim with: Unicode space
// separators, tab, vertical tab, form feed, BOM and the line terminators.
// U+0085 is not in that set and is kept.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isClientSpace)
}

func isClientSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\ufeff', '\u2028', '\u2029':
		return true
	}

	return unicode.Is(unicode.Zs, r)
}

// Trimmed fails on the first field submitted with leading or trailing
// whitespace. Values are rejected, never silently trimmed.
func Trimmed(fields ...string) Rule {
	return Rule{
		Name: "trim",
		Check: func(p Payload) *domainerrors.ValidationError {
			for _, field := range fields {
				v, ok := p.String(field)
				if !ok {
					continue
				}
				if TrimSpace(v) != v {
					return domainerrors.NewValidationError(field, MsgSurroundingWS)
				}
			}

			return nil
		},
	}
}

// Bound is a length constraint on one field. Lengths count characters;
// MaxBytes switches the maximum to bytes for values fed to byte-limited
// primitives such as bcrypt.
type Bound struct {
	Field    string
	Min      int // 0 means no minimum.
	Max      int // 0 means no maximum.
	MaxBytes bool
}

// Sized checks every minimum across bounds before any maximum, so a field that
// is too short is always reported ahead of another field that is too long.
func Sized(bounds ...Bound) Rule {
	return Rule{
		Name: "size",
		Check: func(p Payload) *domainerrors.ValidationError {
			for _, b := range bounds {
				v, ok := p.String(b.Field)
				if !ok || b.Min == 0 {
					continue
				}
				if utf8.RuneCountInString(v) < b.Min {
					return domainerrors.NewValidationError(b.Field, fmt.Sprintf("Must be at least %d characters long", b.Min))
				}
			}

			for _, b := range bounds {
				v, ok := p.String(b.Field)
				if !ok || b.Max == 0 {
					continue
				}
				length := utf8.RuneCountInString(v)
				if b.MaxBytes {
					length = len(v)
				}
				if length > b.Max {
					return domainerrors.NewValidationError(b.Field, fmt.Sprintf("Must be at most %d characters long", b.Max))
				}
			}

			return nil
		},
	}
}
