// Package profile validates and normalizes first-login profile data. It has
// no side effects.
package profile

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"portal/internal/auth/models"
	id "portal/pkg/domain"
	dErrors "portal/pkg/domain-errors"
	"portal/pkg/email"
)

// User-facing validation messages.
const (
	MsgRequired          = "Поле обязательно для заполнения"
	MsgSelectMinistry    = "Выберите министерство"
	MsgSelectDepartment  = "Выберите подразделение"
	MsgSelectPosition    = "Выберите должность"
	MsgSelectAddress     = "Выберите адрес"
	MsgInvalidEmail      = "Введите корректный email"
	MsgInvalidPhone      = "Формат: +7 (XXXX) XX-XX-XX"
	MsgUnknownMinistry   = "Министерство не найдено"
	MsgUnknownDepartment = "Подразделение не найдено в выбранном министерстве"
	MsgUnknownPosition   = "Должность не найдена"
	MsgUnknownAddress    = "Адрес не найден"
	MsgInvalidText       = "Поле содержит недопустимые символы"
)

var (
	errValidation = dErrors.New(dErrors.CodeValidation, "profile validation failed")

	phonePattern = regexp.MustCompile(`^\+7 \(\d{4}\) \d{2}-\d{2}-\d{2}$`)
)

// References answers whether the organizational ids on a form point at
// existing reference records.
type References interface {
	MinistryExists(ctx context.Context, ministry id.MinistryID) bool
	DepartmentExists(ctx context.Context, department id.DepartmentID) bool
	DepartmentInMinistry(ctx context.Context, department id.DepartmentID, ministry id.MinistryID) bool
	PositionExists(ctx context.Context, position id.PositionID) bool
	AddressExists(ctx context.Context, address id.AddressID) bool
}

// ValidationError carries the per-field result of a rejected submission.
type ValidationError struct {
	Fields models.FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		names = append(names, string(f))
	}
	return fmt.Sprintf("profile validation failed: %s", strings.Join(names, ", "))
}

// Unwrap exposes the validation code to dErrors.HasCode.
func (e *ValidationError) Unwrap() error {
	return errValidation
}

// Normalize trims surrounding whitespace from every field.
func Normalize(form models.ProfileForm) models.ProfileForm {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.MiddleName = strings.TrimSpace(form.MiddleName)
	form.Ministry = id.MinistryID(strings.TrimSpace(string(form.Ministry)))
	form.Department = id.DepartmentID(strings.TrimSpace(string(form.Department)))
	form.Position = id.PositionID(strings.TrimSpace(string(form.Position)))
	form.Address = id.AddressID(strings.TrimSpace(string(form.Address)))
	form.OfficeNumber = strings.TrimSpace(form.OfficeNumber)
	form.PhoneNumber = strings.TrimSpace(form.PhoneNumber)
	form.InternalPhone = strings.TrimSpace(form.InternalPhone)
	form.Email = strings.TrimSpace(form.Email)
	return form
}

// Validate checks every field and returns all failures at once. refs may be
// nil, in which case reference ids are only checked for presence.
func Validate(ctx context.Context, form models.ProfileForm, refs References) models.FieldErrors {
	form = Normalize(form)
	errs := models.FieldErrors{}

	for _, f := range []models.Field{models.FieldFirstName, models.FieldLastName, models.FieldMiddleName, models.FieldOfficeNumber, models.FieldInternalPhone} {
		if form.Value(f) == "" {
			errs[f] = MsgRequired
		}
	}

	switch {
	case form.Email == "":
		errs[models.FieldEmail] = MsgRequired
	case !email.Valid(form.Email):
		errs[models.FieldEmail] = MsgInvalidEmail
	}

	switch {
	case form.PhoneNumber == "":
		errs[models.FieldPhoneNumber] = MsgRequired
	case !phonePattern.MatchString(form.PhoneNumber):
		errs[models.FieldPhoneNumber] = MsgInvalidPhone
	}

	validateReferences(ctx, form, refs, errs)

	// Invalid UTF-8 cannot survive the JSON session record unchanged.
	for _, f := range models.ProfileFields {
		if !utf8.ValidString(form.Value(f)) {
			errs[f] = MsgInvalidText
		}
	}
	return errs
}

func validateReferences(ctx context.Context, form models.ProfileForm, refs References, errs models.FieldErrors) {
	if form.Ministry.IsZero() {
		errs[models.FieldMinistry] = MsgSelectMinistry
	} else if refs != nil && !refs.MinistryExists(ctx, form.Ministry) {
		errs[models.FieldMinistry] = MsgUnknownMinistry
	}

	// Without a ministry the department can only be checked for existence.
	switch {
	case form.Department.IsZero():
		errs[models.FieldDepartment] = MsgSelectDepartment
	case refs == nil:
	case form.Ministry.IsZero():
		if !refs.DepartmentExists(ctx, form.Department) {
			errs[models.FieldDepartment] = MsgUnknownDepartment
		}
	case !refs.DepartmentInMinistry(ctx, form.Department, form.Ministry):
		errs[models.FieldDepartment] = MsgUnknownDepartment
	}

	if form.Position.IsZero() {
		errs[models.FieldPosition] = MsgSelectPosition
	} else if refs != nil && !refs.PositionExists(ctx, form.Position) {
		errs[models.FieldPosition] = MsgUnknownPosition
	}

	if form.Address.IsZero() {
		errs[models.FieldAddress] = MsgSelectAddress
	} else if refs != nil && !refs.AddressExists(ctx, form.Address) {
		errs[models.FieldAddress] = MsgUnknownAddress
	}
}
