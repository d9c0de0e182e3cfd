// Package shell renders portal screens as terminal text.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"portal/internal/auth/models"
	"portal/internal/auth/profile"
	"portal/internal/reference"
	"portal/internal/view"
)

// Labels are the captions of the first-login form fields.
var Labels = map[models.Field]string{
	models.FieldLastName:      "Фамилия",
	models.FieldFirstName:     "Имя",
	models.FieldMiddleName:    "Отчество",
	models.FieldMinistry:      "Министерство",
	models.FieldDepartment:    "Структурное подразделение",
	models.FieldPosition:      "Должность",
	models.FieldAddress:       "Адрес",
	models.FieldOfficeNumber:  "Номер кабинета",
	models.FieldPhoneNumber:   "Номер телефона",
	models.FieldInternalPhone: "Внутренний номер",
	models.FieldEmail:         "Адрес электронной почты",
}

// Renderer writes screens to w, resolving reference ids through refs.
type Renderer struct {
	w    io.Writer
	refs *reference.Service
}

func NewRenderer(w io.Writer, refs *reference.Service) *Renderer {
	return &Renderer{w: w, refs: refs}
}

func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *Renderer) Success(msg string) {
	r.printf("%s %s\n", successPrefix, msg)
}

func (r *Renderer) Error(msg string) {
	r.printf("%s %s\n", errorPrefix, msg)
}

// LoginScreen shows the portal banner and the demo accounts.
func (r *Renderer) LoginScreen() {
	r.printf("%s\n%s\n\n", titleStyle.Render("Корпоративный портал"), dimStyle.Render("Правительство Хабаровского края"))
	r.printf("%s\n", dimStyle.Render("Демо-данные для входа:"))
	r.printf("  %s admin@gov27.ru / password\n", boldStyle.Render("Администратор:"))
	r.printf("  %s ivanov@gov27.ru / password\n", boldStyle.Render("Пользователь:"))
	r.printf("\n%s\n", dimStyle.Render("portal login <учетная запись>"))
}

// FirstLoginScreen explains the onboarding step and shows the prefilled form.
func (r *Renderer) FirstLoginScreen(ctx context.Context, identity *models.Identity) {
	r.printf("%s\n%s\n\n", titleStyle.Render("Завершение регистрации"),
		dimStyle.Render("Это ваш первый вход в систему. Пожалуйста, заполните все поля для продолжения работы."))
	r.profileFields(ctx, models.FormFromIdentity(identity))
	r.printf("\n%s\n", dimStyle.Render("portal profile --last-name ... --email ..."))
}

// FieldErrors lists validation failures in form order.
func (r *Renderer) FieldErrors(errs models.FieldErrors) {
	for _, f := range errs.Fields() {
		r.printf("%s %s: %s\n", errorPrefix, Labels[f], errs[f])
	}
}

// Header shows who is logged in and the navigation for their role.
func (r *Renderer) Header(identity *models.Identity, current view.View) {
	name := identity.FullName.Display()
	if name == "" {
		name = identity.DomainAccount
	}
	line := boldStyle.Render(name)
	if identity.IsAdmin() {
		line += " " + dimStyle.Render("[Администратор]")
	}
	r.printf("%s\n", line)

	items := view.Navigation(identity.Role)
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item.View == current {
			parts = append(parts, activeMarker+boldStyle.Render(item.Title))
			continue
		}
		parts = append(parts, dimStyle.Render(item.Title))
	}
	r.printf("%s\n\n", strings.Join(parts, "  "))
}

// Dashboard greets the user and lists active resources.
func (r *Renderer) Dashboard(ctx context.Context, identity *models.Identity) {
	r.printf("%s\n", titleStyle.Render("Добро пожаловать, "+identity.FirstName+"!"))
	var org []string
	if m, err := r.refs.Ministry(ctx, identity.Ministry); err == nil {
		org = append(org, m.Name)
	}
	if d, err := r.refs.Department(ctx, identity.Department); err == nil {
		org = append(org, d.Name)
	}
	if len(org) > 0 {
		r.printf("%s\n", dimStyle.Render(strings.Join(org, " • ")))
	}
	r.printf("\n")

	tiles := r.refs.Dashboard(ctx)
	if len(tiles) == 0 {
		r.printf("%s\n", dimStyle.Render("Нет доступных ресурсов"))
		return
	}
	for _, res := range tiles {
		body := boldStyle.Render(res.Title) + "\n" + dimStyle.Render(res.Description) + "\n" + res.URL
		r.printf("%s\n", tileStyle.Render(body))
	}
}

// Profile shows the committed profile of an active user.
func (r *Renderer) Profile(ctx context.Context, identity *models.Identity) {
	r.printf("%s\n\n", titleStyle.Render("Профиль пользователя"))
	r.profileFields(ctx, models.FormFromIdentity(identity))
}

func (r *Renderer) profileFields(ctx context.Context, form models.ProfileForm) {
	width := 0
	for _, f := range models.ProfileFields {
		width = max(width, lipgloss.Width(Labels[f]))
	}
	label := lipgloss.NewStyle().Width(width + 2)
	for _, f := range models.ProfileFields {
		value := r.displayValue(ctx, form, f)
		if value == "" {
			value = dimStyle.Render("—")
		}
		r.printf("%s%s\n", label.Render(Labels[f]+":"), value)
	}
}

// displayValue resolves reference ids to names.
func (r *Renderer) displayValue(ctx context.Context, form models.ProfileForm, f models.Field) string {
	raw := form.Value(f)
	if raw == "" {
		return ""
	}
	switch f {
	case models.FieldMinistry:
		if m, err := r.refs.Ministry(ctx, form.Ministry); err == nil {
			return m.Name
		}
	case models.FieldDepartment:
		if d, err := r.refs.Department(ctx, form.Department); err == nil {
			return d.Name
		}
	case models.FieldPosition:
		if p, err := r.refs.Position(ctx, form.Position); err == nil {
			return p.Name
		}
	case models.FieldAddress:
		if a, err := r.refs.Address(ctx, form.Address); err == nil {
			return a.Display()
		}
	case models.FieldPhoneNumber:
		return profile.FormatPhone(raw)
	}
	return raw
}

// References prints one reference set as a table.
func (r *Renderer) References(ctx context.Context, v view.View) error {
	var headers []string
	var rows [][]string
	switch v {
	case view.Ministries:
		headers = []string{"ID", "Название", "Код"}
		for _, m := range r.refs.ListMinistries(ctx) {
			rows = append(rows, []string{m.ID.String(), m.Name, m.Code})
		}
	case view.Departments:
		headers = []string{"ID", "Название", "Министерство", "Код"}
		for _, d := range r.refs.ListDepartments(ctx) {
			ministry := d.Ministry.String()
			if m, err := r.refs.Ministry(ctx, d.Ministry); err == nil {
				ministry = m.Code
			}
			rows = append(rows, []string{d.ID.String(), d.Name, ministry, d.Code})
		}
	case view.Positions:
		headers = []string{"ID", "Название", "Код"}
		for _, p := range r.refs.ListPositions(ctx) {
			rows = append(rows, []string{p.ID.String(), p.Name, p.Code})
		}
	case view.Addresses:
		headers = []string{"ID", "Адрес", "Индекс"}
		for _, a := range r.refs.ListAddresses(ctx) {
			rows = append(rows, []string{a.ID.String(), a.Display(), a.PostalCode})
		}
	case view.Resources:
		headers = []string{"ID", "Название", "URL", "Порядок", "Активен"}
		for _, res := range r.refs.ListResources(ctx) {
			active := "нет"
			if res.Active {
				active = "да"
			}
			rows = append(rows, []string{res.ID.String(), res.Title, res.URL, strconv.Itoa(res.Order), active})
		}
	default:
		return fmt.Errorf("%s is not a reference list", v)
	}

	r.printf("%s\n", titleStyle.Render(view.Title(v)))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	r.printf("%s\n", t.Render())
	return nil
}
