package reference

import (
	"context"

	id "portal/pkg/domain"
)

// The methods below satisfy profile.References.

func (s *Service) MinistryExists(ctx context.Context, ministry id.MinistryID) bool {
	return s.stores.Ministries.Exists(ctx, string(ministry))
}

func (s *Service) DepartmentExists(ctx context.Context, department id.DepartmentID) bool {
	return s.stores.Departments.Exists(ctx, string(department))
}

// DepartmentInMinistry reports whether department exists and belongs to ministry.
func (s *Service) DepartmentInMinistry(ctx context.Context, department id.DepartmentID, ministry id.MinistryID) bool {
	d, err := s.stores.Departments.Get(ctx, string(department))
	return err == nil && d.Ministry == ministry
}

func (s *Service) PositionExists(ctx context.Context, position id.PositionID) bool {
	return s.stores.Positions.Exists(ctx, string(position))
}

func (s *Service) AddressExists(ctx context.Context, address id.AddressID) bool {
	return s.stores.Addresses.Exists(ctx, string(address))
}
