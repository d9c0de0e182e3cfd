// Package reference manages ministries, departments, positions, addresses
// and dashboard resources, and answers existence lookups for the first-login
// form.
package reference

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"portal/internal/audit"
	"portal/internal/platform/logger"
	"portal/internal/reference/models"
	"portal/internal/reference/store"
	id "portal/pkg/domain"
	dErrors "portal/pkg/domain-errors"
	"portal/pkg/platform/sentinel"
	"portal/pkg/requestcontext"
)

// Stores groups the per-entity record stores.
type Stores struct {
	Ministries  *store.InMemory[models.Ministry]
	Departments *store.InMemory[models.Department]
	Positions   *store.InMemory[models.Position]
	Addresses   *store.InMemory[models.Address]
	Resources   *store.InMemory[models.Resource]
}

func NewStores() Stores {
	return Stores{
		Ministries:  store.NewInMemory[models.Ministry](),
		Departments: store.NewInMemory[models.Department](),
		Positions:   store.NewInMemory[models.Position](),
		Addresses:   store.NewInMemory[models.Address](),
		Resources:   store.NewInMemory[models.Resource](),
	}
}

// Service is the CRUD surface over the reference stores.
type Service struct {
	stores         Stores
	logger         *slog.Logger
	auditPublisher audit.Emitter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher audit.Emitter) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func NewService(stores Stores, opts ...Option) *Service {
	s := &Service{stores: stores, logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type validated interface {
	store.Record
	Validate() error
}

func add[T validated](ctx context.Context, s *Service, st *store.InMemory[T], kind string, r T) (T, error) {
	if err := r.Validate(); err != nil {
		return r, err
	}
	if err := st.Create(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return r, dErrors.New(dErrors.CodeConflict, kind+" "+r.RecordID()+" already exists")
		}
		return r, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create "+kind)
	}
	s.logChange(ctx, kind, r.RecordID(), "created")
	return r, nil
}

func update[T validated](ctx context.Context, s *Service, st *store.InMemory[T], kind string, r T) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := st.Update(ctx, r); err != nil {
		return mapMissing(err, kind)
	}
	s.logChange(ctx, kind, r.RecordID(), "updated")
	return nil
}

func remove[T store.Record](ctx context.Context, s *Service, st *store.InMemory[T], kind, key string) error {
	if err := st.Delete(ctx, key); err != nil {
		return mapMissing(err, kind)
	}
	s.logChange(ctx, kind, key, "deleted")
	return nil
}

func mapMissing(err error, kind string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, kind+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to change "+kind)
}

func newID() string {
	return uuid.NewString()
}

func (s *Service) logChange(ctx context.Context, kind, key, change string) {
	s.logger.InfoContext(ctx, "reference changed", "kind", kind, "id", key, "change", change)
	if s.auditPublisher == nil {
		return
	}
	audit.LogEmit(ctx, s.logger, s.auditPublisher, audit.EventReferenceChanged,
		requestcontext.IdentityID(ctx), kind+":"+key, change)
}

// Ministries

func (s *Service) AddMinistry(ctx context.Context, m models.Ministry) (models.Ministry, error) {
	m.ID = id.MinistryID(newID())
	return add(ctx, s, s.stores.Ministries, "ministry", m)
}

func (s *Service) UpdateMinistry(ctx context.Context, m models.Ministry) error {
	return update(ctx, s, s.stores.Ministries, "ministry", m)
}

func (s *Service) DeleteMinistry(ctx context.Context, ministry id.MinistryID) error {
	return remove(ctx, s, s.stores.Ministries, "ministry", string(ministry))
}

func (s *Service) ListMinistries(ctx context.Context) []models.Ministry {
	return s.stores.Ministries.List(ctx)
}

func (s *Service) Ministry(ctx context.Context, ministry id.MinistryID) (models.Ministry, error) {
	m, err := s.stores.Ministries.Get(ctx, string(ministry))
	return m, mapLookup(err, "ministry")
}

// Departments

// AddDepartment creates a department under an existing ministry.
func (s *Service) AddDepartment(ctx context.Context, d models.Department) (models.Department, error) {
	if err := s.requireMinistry(ctx, d.Ministry); err != nil {
		return d, err
	}
	d.ID = id.DepartmentID(newID())
	return add(ctx, s, s.stores.Departments, "department", d)
}

func (s *Service) UpdateDepartment(ctx context.Context, d models.Department) error {
	if err := s.requireMinistry(ctx, d.Ministry); err != nil {
		return err
	}
	return update(ctx, s, s.stores.Departments, "department", d)
}

func (s *Service) DeleteDepartment(ctx context.Context, department id.DepartmentID) error {
	return remove(ctx, s, s.stores.Departments, "department", string(department))
}

func (s *Service) ListDepartments(ctx context.Context) []models.Department {
	return s.stores.Departments.List(ctx)
}

func (s *Service) Department(ctx context.Context, department id.DepartmentID) (models.Department, error) {
	d, err := s.stores.Departments.Get(ctx, string(department))
	return d, mapLookup(err, "department")
}

// Departments lists the departments of one ministry, for the cascading
// select on the first-login form.
func (s *Service) Departments(ctx context.Context, ministry id.MinistryID) []models.Department {
	all := s.stores.Departments.List(ctx)
	out := all[:0]
	for _, d := range all {
		if d.Ministry == ministry {
			out = append(out, d)
		}
	}
	return out
}

func (s *Service) requireMinistry(ctx context.Context, ministry id.MinistryID) error {
	if ministry.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "department ministry is required")
	}
	if !s.stores.Ministries.Exists(ctx, string(ministry)) {
		return dErrors.New(dErrors.CodeValidation, "department ministry does not exist")
	}
	return nil
}

// Positions

func (s *Service) AddPosition(ctx context.Context, p models.Position) (models.Position, error) {
	p.ID = id.PositionID(newID())
	return add(ctx, s, s.stores.Positions, "position", p)
}

func (s *Service) UpdatePosition(ctx context.Context, p models.Position) error {
	return update(ctx, s, s.stores.Positions, "position", p)
}

func (s *Service) DeletePosition(ctx context.Context, position id.PositionID) error {
	return remove(ctx, s, s.stores.Positions, "position", string(position))
}

func (s *Service) ListPositions(ctx context.Context) []models.Position {
	return s.stores.Positions.List(ctx)
}

func (s *Service) Position(ctx context.Context, position id.PositionID) (models.Position, error) {
	p, err := s.stores.Positions.Get(ctx, string(position))
	return p, mapLookup(err, "position")
}

// Addresses

func (s *Service) AddAddress(ctx context.Context, a models.Address) (models.Address, error) {
	a.ID = id.AddressID(newID())
	return add(ctx, s, s.stores.Addresses, "address", a)
}

func (s *Service) UpdateAddress(ctx context.Context, a models.Address) error {
	return update(ctx, s, s.stores.Addresses, "address", a)
}

func (s *Service) DeleteAddress(ctx context.Context, address id.AddressID) error {
	return remove(ctx, s, s.stores.Addresses, "address", string(address))
}

func (s *Service) ListAddresses(ctx context.Context) []models.Address {
	return s.stores.Addresses.List(ctx)
}

func (s *Service) Address(ctx context.Context, address id.AddressID) (models.Address, error) {
	a, err := s.stores.Addresses.Get(ctx, string(address))
	return a, mapLookup(err, "address")
}

// Resources

func (s *Service) AddResource(ctx context.Context, r models.Resource) (models.Resource, error) {
	r.ID = id.ResourceID(newID())
	return add(ctx, s, s.stores.Resources, "resource", r)
}

func (s *Service) UpdateResource(ctx context.Context, r models.Resource) error {
	return update(ctx, s, s.stores.Resources, "resource", r)
}

func (s *Service) DeleteResource(ctx context.Context, resource id.ResourceID) error {
	return remove(ctx, s, s.stores.Resources, "resource", string(resource))
}

func (s *Service) ListResources(ctx context.Context) []models.Resource {
	return s.stores.Resources.List(ctx)
}

// Dashboard returns the active resources ordered by their Order field. Ties
// keep insertion order.
func (s *Service) Dashboard(ctx context.Context) []models.Resource {
	all := s.stores.Resources.List(ctx)
	active := all[:0]
	for _, r := range all {
		if r.Active {
			active = append(active, r)
		}
	}
	slices.SortStableFunc(active, func(a, b models.Resource) int {
		return a.Order - b.Order
	})
	return active
}

func mapLookup(err error, kind string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, kind+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+kind)
}
