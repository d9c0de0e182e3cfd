// Package models defines the organizational reference records a profile
// points at, plus the portal resources shown on the dashboard.
package models

import (
	"strings"

	id "portal/pkg/domain"
	dErrors "portal/pkg/domain-errors"
)

type Ministry struct {
	ID   id.MinistryID `json:"id"`
	Name string        `json:"name"`
	Code string        `json:"code"`
}

func (m Ministry) RecordID() string { return string(m.ID) }

func (m Ministry) Validate() error {
	return requireNonBlank("ministry name", m.Name)
}

type Department struct {
	ID       id.DepartmentID `json:"id"`
	Name     string          `json:"name"`
	Ministry id.MinistryID   `json:"ministryId"`
	Code     string          `json:"code"`
}

func (d Department) RecordID() string { return string(d.ID) }

func (d Department) Validate() error {
	if err := requireNonBlank("department name", d.Name); err != nil {
		return err
	}
	if d.Ministry.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "department ministry is required")
	}
	return nil
}

type Position struct {
	ID   id.PositionID `json:"id"`
	Name string        `json:"name"`
	Code string        `json:"code"`
}

func (p Position) RecordID() string { return string(p.ID) }

func (p Position) Validate() error {
	return requireNonBlank("position name", p.Name)
}

// Address is an office building.
type Address struct {
	ID         id.AddressID `json:"id"`
	Street     string       `json:"street"`
	Building   string       `json:"building"`
	City       string       `json:"city"`
	PostalCode string       `json:"postalCode"`
}

func (a Address) RecordID() string { return string(a.ID) }

func (a Address) Validate() error {
	if err := requireNonBlank("address street", a.Street); err != nil {
		return err
	}
	return requireNonBlank("address city", a.City)
}

// Display renders "City, Street, Building".
func (a Address) Display() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.City, a.Street, a.Building} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Resource is a link tile on the dashboard. Inactive resources are hidden.
type Resource struct {
	ID          id.ResourceID `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	Icon        string        `json:"icon"`
	Order       int           `json:"order"`
	Active      bool          `json:"isActive"`
}

func (r Resource) RecordID() string { return string(r.ID) }

func (r Resource) Validate() error {
	if err := requireNonBlank("resource title", r.Title); err != nil {
		return err
	}
	return requireNonBlank("resource url", r.URL)
}

// IsExternal reports whether the resource opens outside the portal.
func (r Resource) IsExternal() bool {
	return strings.HasPrefix(r.URL, "http")
}

func requireNonBlank(what, v string) error {
	if strings.TrimSpace(v) == "" {
		return dErrors.New(dErrors.CodeValidation, what+" is required")
	}
	return nil
}
