package directory

import (
	"portal/internal/auth/models"
	"portal/pkg/secrets"
)

// DemoSecret is the shared secret of the seeded demo accounts.
const DemoSecret = "password"

// DemoIdentities returns the accounts the portal ships with. The last one
// has never completed its profile, so it exercises the first-login gate.
func DemoIdentities() []models.Identity {
	return []models.Identity{
		{
			ID:            "admin",
			DomainAccount: "admin@gov27.ru",
			FullName:      models.FullName{FirstName: "Администратор", LastName: "Системы", MiddleName: "Портала"},
			Assignment:    models.Assignment{Ministry: "1", Department: "1", Position: "4", Address: "1"},
			Contacts: models.Contacts{
				OfficeNumber:  "101",
				PhoneNumber:   "+7 (4212) 12-34-56",
				InternalPhone: "1234",
				Email:         "admin@gov27.ru",
			},
			Role: models.RoleAdmin,
		},
		{
			ID:            "user1",
			DomainAccount: "ivanov@gov27.ru",
			FullName:      models.FullName{FirstName: "Иван", LastName: "Иванов", MiddleName: "Иванович"},
			Assignment:    models.Assignment{Ministry: "1", Department: "1", Position: "2", Address: "1"},
			Contacts: models.Contacts{
				OfficeNumber:  "201",
				PhoneNumber:   "+7 (4212) 12-34-57",
				InternalPhone: "1235",
				Email:         "ivanov@gov27.ru",
			},
			Role: models.RoleUser,
		},
		{
			ID:                "user2",
			DomainAccount:     "petrov@gov27.ru",
			Role:              models.RoleUser,
			FirstLoginPending: true,
		},
	}
}

// DefaultEntries hashes DemoSecret at the given bcrypt cost for every demo
// identity.
func DefaultEntries(cost int) ([]Entry, error) {
	hash, err := secrets.HashWithCost(DemoSecret, cost)
	if err != nil {
		return nil, err
	}
	identities := DemoIdentities()
	entries := make([]Entry, 0, len(identities))
	for _, identity := range identities {
		entries = append(entries, Entry{Identity: identity, SecretHash: hash})
	}
	return entries, nil
}
