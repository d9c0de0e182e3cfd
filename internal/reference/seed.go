package reference

import (
	"context"

	"portal/internal/reference/models"
)

// Seed loads the reference data the portal ships with. Seeded records keep
// short numeric ids because the demo identities point at them.
func Seed(ctx context.Context, s *Service) error {
	for _, m := range []models.Ministry{
		{ID: "1", Name: "Министерство экономического развития", Code: "MED"},
		{ID: "2", Name: "Министерство образования и науки", Code: "MON"},
		{ID: "3", Name: "Министерство здравоохранения", Code: "MZ"},
		{ID: "4", Name: "Министерство строительства", Code: "MS"},
	} {
		if _, err := add(ctx, s, s.stores.Ministries, "ministry", m); err != nil {
			return err
		}
	}
	for _, d := range []models.Department{
		{ID: "1", Name: "Отдел экономического анализа", Ministry: "1", Code: "OEA"},
		{ID: "2", Name: "Отдел инвестиций", Ministry: "1", Code: "OI"},
		{ID: "3", Name: "Отдел дошкольного образования", Ministry: "2", Code: "ODO"},
		{ID: "4", Name: "Отдел высшего образования", Ministry: "2", Code: "OVO"},
	} {
		if _, err := add(ctx, s, s.stores.Departments, "department", d); err != nil {
			return err
		}
	}
	for _, p := range []models.Position{
		{ID: "1", Name: "Главный специалист", Code: "GS"},
		{ID: "2", Name: "Ведущий специалист", Code: "VS"},
		{ID: "3", Name: "Заместитель начальника отдела", Code: "ZNO"},
		{ID: "4", Name: "Начальник отдела", Code: "NO"},
	} {
		if _, err := add(ctx, s, s.stores.Positions, "position", p); err != nil {
			return err
		}
	}
	for _, a := range []models.Address{
		{ID: "1", Street: "ул. Муравьева-Амурского", Building: "22", City: "Хабаровск", PostalCode: "680000"},
		{ID: "2", Street: "ул. Фрунзе", Building: "68", City: "Хабаровск", PostalCode: "680000"},
		{ID: "3", Street: "ул. Комсомольская", Building: "56", City: "Хабаровск", PostalCode: "680000"},
	} {
		if _, err := add(ctx, s, s.stores.Addresses, "address", a); err != nil {
			return err
		}
	}
	for _, r := range []models.Resource{
		{ID: "1", Title: "Система электронного документооборота", Description: "СЭД для работы с документами", URL: "/sed", Icon: "FileText", Order: 1, Active: true},
		{ID: "2", Title: "Телефонный справочник", Description: "Справочник сотрудников", URL: "/phonebook", Icon: "Phone", Order: 2, Active: true},
		{ID: "3", Title: "Обратиться в техподдержку", Description: "Техническая поддержка", URL: "/support", Icon: "Headphones", Order: 3, Active: true},
		{ID: "4", Title: "Направить заявку", Description: "Подача заявок и обращений", URL: "/requests", Icon: "Send", Order: 4, Active: true},
	} {
		if _, err := add(ctx, s, s.stores.Resources, "resource", r); err != nil {
			return err
		}
	}
	return nil
}
