package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"portal/internal/auth/models"
	"portal/internal/auth/profile"
	"portal/internal/view"
	id "portal/pkg/domain"
	dErrors "portal/pkg/domain-errors"
)

// profileFlags maps each form field to its flag name.
var profileFlags = map[models.Field]string{
	models.FieldLastName:      "last-name",
	models.FieldFirstName:     "first-name",
	models.FieldMiddleName:    "middle-name",
	models.FieldMinistry:      "ministry",
	models.FieldDepartment:    "department",
	models.FieldPosition:      "position",
	models.FieldAddress:       "address",
	models.FieldOfficeNumber:  "office",
	models.FieldPhoneNumber:   "phone",
	models.FieldInternalPhone: "internal-phone",
	models.FieldEmail:         "email",
}

func profileCmd() *cobra.Command {
	values := make(map[models.Field]*string, len(profileFlags))
	var check bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Complete the first-login profile",
		Long: "Fields not given as flags keep the value the directory already has. " +
			"The phone number may be typed as plain digits; it is formatted as +7 (XXXX) XX-XX-XX.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r := renderer(cmd)

			identity, ok := appCtx.Auth.Current()
			if !ok {
				r.Error("Сначала войдите в систему")
				r.LoginScreen()
				return errReported
			}

			form := models.FormFromIdentity(identity)
			for f, name := range profileFlags {
				if cmd.Flags().Changed(name) {
					setField(&form, f, *values[f])
				}
			}
			form.PhoneNumber = profile.FormatPhone(form.PhoneNumber)

			if check {
				errs := appCtx.Auth.ValidateProfile(ctx, form)
				if len(errs) > 0 {
					r.FieldErrors(errs)
					return errReported
				}
				r.Success("Данные заполнены корректно")
				return nil
			}

			_, err := appCtx.Auth.SubmitProfile(ctx, form)
			var verr *profile.ValidationError
			switch {
			case err == nil:
			case errors.As(err, &verr):
				r.FieldErrors(verr.Fields)
				return errReported
			case dErrors.HasCode(err, dErrors.CodeInvalidState):
				r.Error("Профиль уже заполнен")
				return errReported
			case dErrors.HasCode(err, dErrors.CodePersistence):
				r.Error("Не удалось сохранить профиль, попробуйте еще раз")
				return err
			default:
				return err
			}

			r.Success("Регистрация завершена")
			return render(cmd, view.Dashboard)
		},
	}

	for _, f := range models.ProfileFields {
		values[f] = cmd.Flags().String(profileFlags[f], "", string(f))
	}
	cmd.Flags().BoolVar(&check, "check", false, "validate without saving")
	return cmd
}

func setField(form *models.ProfileForm, f models.Field, v string) {
	switch f {
	case models.FieldFirstName:
		form.FirstName = v
	case models.FieldLastName:
		form.LastName = v
	case models.FieldMiddleName:
		form.MiddleName = v
	case models.FieldMinistry:
		form.Ministry = id.MinistryID(v)
	case models.FieldDepartment:
		form.Department = id.DepartmentID(v)
	case models.FieldPosition:
		form.Position = id.PositionID(v)
	case models.FieldAddress:
		form.Address = id.AddressID(v)
	case models.FieldOfficeNumber:
		form.OfficeNumber = v
	case models.FieldPhoneNumber:
		form.PhoneNumber = v
	case models.FieldInternalPhone:
		form.InternalPhone = v
	case models.FieldEmail:
		form.Email = v
	}
}
