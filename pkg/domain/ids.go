package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	dErrors "portal/pkg/domain-errors"
)

// maxIDLength bounds identifiers accepted at trust boundaries (CLI flags,
// persisted session records).
const maxIDLength = 128

// Typed identifiers keep identities and the four reference sets from being
// mixed up at compile time. Seeded records use short numeric ids ("1"),
// records created at runtime use UUIDs; both are plain strings on the wire.
type (
	IdentityID   string
	MinistryID   string
	DepartmentID string
	PositionID   string
	AddressID    string
	ResourceID   string
)

func (id IdentityID) String() string   { return string(id) }
func (id MinistryID) String() string   { return string(id) }
func (id DepartmentID) String() string { return string(id) }
func (id PositionID) String() string   { return string(id) }
func (id AddressID) String() string    { return string(id) }
func (id ResourceID) String() string   { return string(id) }

func (id IdentityID) IsZero() bool   { return id == "" }
func (id MinistryID) IsZero() bool   { return id == "" }
func (id DepartmentID) IsZero() bool { return id == "" }
func (id PositionID) IsZero() bool   { return id == "" }
func (id AddressID) IsZero() bool    { return id == "" }
func (id ResourceID) IsZero() bool   { return id == "" }

func ParseIdentityID(s string) (IdentityID, error) {
	v, err := parseID(s, "identity ID")
	return IdentityID(v), err
}

func ParseMinistryID(s string) (MinistryID, error) {
	v, err := parseID(s, "ministry ID")
	return MinistryID(v), err
}

func ParseDepartmentID(s string) (DepartmentID, error) {
	v, err := parseID(s, "department ID")
	return DepartmentID(v), err
}

func ParsePositionID(s string) (PositionID, error) {
	v, err := parseID(s, "position ID")
	return PositionID(v), err
}

func ParseAddressID(s string) (AddressID, error) {
	v, err := parseID(s, "address ID")
	return AddressID(v), err
}

func ParseResourceID(s string) (ResourceID, error) {
	v, err := parseID(s, "resource ID")
	return ResourceID(v), err
}

// parseID trims s and rejects blank, oversized, non-UTF-8 input and anything
// containing whitespace or control characters.
func parseID(s, label string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	if len(s) > maxIDLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" is too long")
	}
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
		}
	}
	return s, nil
}
