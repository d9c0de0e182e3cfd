package models

import (
	"strings"
	"unicode/utf8"

	id "portal/pkg/domain"
)

// Role gates access to the admin screens.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// FullName is the person's name as entered on the first-login form.
type FullName struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
}

// Display renders "Last First Middle", skipping blank parts.
func (n FullName) Display() string {
	return strings.Join(strings.Fields(n.LastName+" "+n.FirstName+" "+n.MiddleName), " ")
}

// Assignment places a person in the organization. Each field references a
// record in the matching reference set.
type Assignment struct {
	Ministry   id.MinistryID   `json:"ministry"`
	Department id.DepartmentID `json:"department"`
	Position   id.PositionID   `json:"position"`
	Address    id.AddressID    `json:"address"`
}

// Contacts holds the ways colleagues reach a person.
type Contacts struct {
	OfficeNumber  string `json:"officeNumber"`
	PhoneNumber   string `json:"phoneNumber"`
	InternalPhone string `json:"internalPhone"`
	Email         string `json:"email"`
}

// Identity is an authenticated user's full profile record. It is also the
// exact shape of the persisted session record, so the embedded groups keep
// the JSON flat.
type Identity struct {
	ID            id.IdentityID `json:"id"`
	DomainAccount string        `json:"domain"`
	FullName
	Assignment
	Contacts
	Role Role `json:"role"`
	// FirstLoginPending is true until the profile completion gate commits a
	// validated profile.
	FirstLoginPending bool `json:"isFirstLogin"`
}

// IsAdmin reports whether the identity may reach admin screens.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Clone returns an independent copy. Identity holds only values, so a shallow
// copy is already deep.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Validate checks the fields every stored identity must carry. The session
// store applies it on both write and read, so anything saved restores equal.
func (i *Identity) Validate() error {
	if _, err := id.ParseIdentityID(string(i.ID)); err != nil {
		return err
	}
	if strings.TrimSpace(i.DomainAccount) == "" {
		return errMissingDomainAccount
	}
	if !i.Role.IsValid() {
		return errInvalidRole
	}
	if !utf8.ValidString(i.DomainAccount) {
		return errInvalidText
	}
	form := FormFromIdentity(i)
	for _, f := range ProfileFields {
		if !utf8.ValidString(form.Value(f)) {
			return errInvalidText
		}
	}
	return nil
}
