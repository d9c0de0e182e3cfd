package directory

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"portal/internal/auth/models"
	id "portal/pkg/domain"
)

// fileAccount is one [[account]] table of a directory file.
type fileAccount struct {
	ID            string `toml:"id"`
	Domain        string `toml:"domain"`
	SecretHash    string `toml:"secret_hash"`
	Role          string `toml:"role"`
	FirstLogin    bool   `toml:"first_login"`
	FirstName     string `toml:"first_name"`
	LastName      string `toml:"last_name"`
	MiddleName    string `toml:"middle_name"`
	Ministry      string `toml:"ministry"`
	Department    string `toml:"department"`
	Position      string `toml:"position"`
	Address       string `toml:"address"`
	OfficeNumber  string `toml:"office_number"`
	PhoneNumber   string `toml:"phone_number"`
	InternalPhone string `toml:"internal_phone"`
	Email         string `toml:"email"`
}

type fileDirectory struct {
	Accounts []fileAccount `toml:"account"`
}

// LoadFile reads directory entries from a TOML file with one [[account]]
// table per identity. Secrets are stored as bcrypt hashes. Unknown keys are
// rejected so typos do not silently drop data.
func LoadFile(path string) ([]Entry, error) {
	var doc fileDirectory
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("read directory file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("directory file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	entries := make([]Entry, 0, len(doc.Accounts))
	for _, a := range doc.Accounts {
		entries = append(entries, Entry{
			Identity: models.Identity{
				ID:            id.IdentityID(a.ID),
				DomainAccount: a.Domain,
				FullName:      models.FullName{FirstName: a.FirstName, LastName: a.LastName, MiddleName: a.MiddleName},
				Assignment: models.Assignment{
					Ministry:   id.MinistryID(a.Ministry),
					Department: id.DepartmentID(a.Department),
					Position:   id.PositionID(a.Position),
					Address:    id.AddressID(a.Address),
				},
				Contacts: models.Contacts{
					OfficeNumber:  a.OfficeNumber,
					PhoneNumber:   a.PhoneNumber,
					InternalPhone: a.InternalPhone,
					Email:         a.Email,
				},
				Role:              models.Role(a.Role),
				FirstLoginPending: a.FirstLogin,
			},
			SecretHash: a.SecretHash,
		})
	}
	return entries, nil
}
