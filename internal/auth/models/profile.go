package models

import (
	dErrors "portal/pkg/domain-errors"
)

var (
	errMissingDomainAccount = dErrors.New(dErrors.CodeInvariantViolation, "identity has no domain account")
	errInvalidRole          = dErrors.New(dErrors.CodeInvariantViolation, "identity has an unknown role")
	errInvalidText          = dErrors.New(dErrors.CodeInvariantViolation, "identity has text that is not valid UTF-8")
)

// Field names a first-login form field. The values match the persisted JSON
// keys so a shell can map errors onto inputs directly.
type Field string

const (
	FieldFirstName     Field = "firstName"
	FieldLastName      Field = "lastName"
	FieldMiddleName    Field = "middleName"
	FieldMinistry      Field = "ministry"
	FieldDepartment    Field = "department"
	FieldPosition      Field = "position"
	FieldAddress       Field = "address"
	FieldOfficeNumber  Field = "officeNumber"
	FieldPhoneNumber   Field = "phoneNumber"
	FieldInternalPhone Field = "internalPhone"
	FieldEmail         Field = "email"
)

// ProfileFields lists every form field in display order.
var ProfileFields = []Field{
	FieldLastName,
	FieldFirstName,
	FieldMiddleName,
	FieldMinistry,
	FieldDepartment,
	FieldPosition,
	FieldAddress,
	FieldOfficeNumber,
	FieldPhoneNumber,
	FieldInternalPhone,
	FieldEmail,
}

// ProfileForm is the data a user submits on first login.
type ProfileForm struct {
	FullName
	Assignment
	Contacts
}

// Value returns the raw string held in field f.
func (p ProfileForm) Value(f Field) string {
	switch f {
	case FieldFirstName:
		return p.FirstName
	case FieldLastName:
		return p.LastName
	case FieldMiddleName:
		return p.MiddleName
	case FieldMinistry:
		return string(p.Ministry)
	case FieldDepartment:
		return string(p.Department)
	case FieldPosition:
		return string(p.Position)
	case FieldAddress:
		return string(p.Address)
	case FieldOfficeNumber:
		return p.OfficeNumber
	case FieldPhoneNumber:
		return p.PhoneNumber
	case FieldInternalPhone:
		return p.InternalPhone
	case FieldEmail:
		return p.Email
	}
	return ""
}

// FormFromIdentity prefills the first-login form with what the directory
// already knows about the person.
func FormFromIdentity(i *Identity) ProfileForm {
	if i == nil {
		return ProfileForm{}
	}
	return ProfileForm{FullName: i.FullName, Assignment: i.Assignment, Contacts: i.Contacts}
}

// ApplyProfile returns a copy of i with the form merged in and onboarding
// marked complete. i itself is not modified.
func ApplyProfile(i *Identity, form ProfileForm) *Identity {
	next := i.Clone()
	next.FullName = form.FullName
	next.Assignment = form.Assignment
	next.Contacts = form.Contacts
	next.FirstLoginPending = false
	return next
}

// FieldErrors maps each invalid form field to a user-facing message. An empty
// map means the form is valid.
type FieldErrors map[Field]string

// Has reports whether f failed validation.
func (e FieldErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Fields returns the failed fields in display order.
func (e FieldErrors) Fields() []Field {
	out := make([]Field, 0, len(e))
	for _, f := range ProfileFields {
		if e.Has(f) {
			out = append(out, f)
		}
	}
	return out
}
