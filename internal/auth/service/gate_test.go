package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"portal/internal/audit"
	"portal/internal/auth/directory"
	"portal/internal/auth/models"
	"portal/internal/auth/profile"
	"portal/internal/auth/store/session"
	"portal/internal/reference"
	"portal/internal/storage"
	dErrors "portal/pkg/domain-errors"
)

// =============================================================================
// Gate Flow Test Suite
// =============================================================================
// Justification: the state machine only holds together when the directory,
// the session store and the reference lookups cooperate. These tests run the
// real collaborators over in-memory storage and restart the "process" by
// building a new session store over the same backend.

type switchableBackend struct {
	*storage.InMemory
	failWrites bool
}

func (b *switchableBackend) Set(ctx context.Context, key string, value []byte) error {
	if b.failWrites {
		return errors.New("storage quota exceeded")
	}
	return b.InMemory.Set(ctx, key, value)
}

type GateSuite struct {
	suite.Suite
	backend *switchableBackend
	dir     *directory.Static
	refs    *reference.Service
	audit   *audit.InMemoryStore
	service *Service
	ctx     context.Context
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateSuite))
}

func (s *GateSuite) SetupSuite() {
	s.ctx = context.Background()
	entries, err := directory.DefaultEntries(bcrypt.MinCost)
	s.Require().NoError(err)
	s.dir, err = directory.New(entries)
	s.Require().NoError(err)

	s.refs = reference.NewService(reference.NewStores())
	s.Require().NoError(reference.Seed(s.ctx, s.refs))
}

func (s *GateSuite) SetupTest() {
	s.backend = &switchableBackend{InMemory: storage.NewInMemory()}
	s.audit = audit.NewInMemoryStore()
	s.service = s.newService()
}

// newService simulates a fresh shell process over the same storage.
func (s *GateSuite) newService() *Service {
	svc, err := New(s.dir, session.New(s.backend),
		WithReferences(s.refs),
		WithAuditPublisher(audit.NewPublisher(s.audit)),
	)
	s.Require().NoError(err)
	return svc
}

func (s *GateSuite) TestFirstLoginFlow() {
	s.Equal(StateUnauthenticated, s.service.Start(s.ctx))

	identity, err := s.service.Login(s.ctx, "petrov@gov27.ru", directory.DemoSecret)
	s.Require().NoError(err)
	s.True(identity.FirstLoginPending)
	s.Equal(StatePendingProfile, s.service.State())

	s.Run("restart keeps the user at the gate", func() {
		s.Equal(StatePendingProfile, s.newService().Start(s.ctx))
	})

	submitted, err := s.service.SubmitProfile(s.ctx, completeForm())
	s.Require().NoError(err)
	s.Equal(StateActive, s.service.State())

	s.Run("completed profile survives a restart", func() {
		next := s.newService()
		s.Equal(StateActive, next.Start(s.ctx))
		restored, ok := next.Current()
		s.Require().True(ok)
		s.Equal(submitted, restored)
	})

	s.Run("second submission is refused", func() {
		_, err := s.service.SubmitProfile(s.ctx, completeForm())
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Equal([]string{"login_succeeded", "session_restored", "profile_completed", "session_restored"}, s.audit.Actions())
}

func (s *GateSuite) TestCompletedAccountGoesStraightToActive() {
	_, err := s.service.Login(s.ctx, "ivanov@gov27.ru", directory.DemoSecret)
	s.Require().NoError(err)
	s.Equal(StateActive, s.service.State())
}

func (s *GateSuite) TestFailedLoginKeepsPriorState() {
	_, err := s.service.Login(s.ctx, "ivanov@gov27.ru", "nope")
	s.ErrorIs(err, directory.ErrInvalidCredentials)
	s.Equal(StateUnauthenticated, s.service.State())

	_, err = s.service.Login(s.ctx, "ivanov@gov27.ru", directory.DemoSecret)
	s.Require().NoError(err)
	_, err = s.service.Login(s.ctx, "ivanov@gov27.ru", "nope")
	s.Error(err)
	current, ok := s.service.Current()
	s.Require().True(ok)
	s.Equal("user1", current.ID.String())
}

func (s *GateSuite) TestInvalidSubmissionLeavesIdentityUnchanged() {
	_, err := s.service.Login(s.ctx, "petrov@gov27.ru", directory.DemoSecret)
	s.Require().NoError(err)
	before, _ := s.service.Current()

	form := completeForm()
	form.Email = "petrov"
	form.Department = "3"
	_, err = s.service.SubmitProfile(s.ctx, form)

	var verr *profile.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal([]models.Field{models.FieldDepartment, models.FieldEmail}, verr.Fields.Fields())

	after, _ := s.service.Current()
	s.Equal(before, after)
	s.Equal(StatePendingProfile, s.service.State())
}

func (s *GateSuite) TestPersistenceFailureRollsBack() {
	_, err := s.service.Login(s.ctx, "petrov@gov27.ru", directory.DemoSecret)
	s.Require().NoError(err)
	before, _ := s.service.Current()

	s.backend.failWrites = true
	_, err = s.service.SubmitProfile(s.ctx, completeForm())
	s.True(dErrors.HasCode(err, dErrors.CodePersistence))

	after, _ := s.service.Current()
	s.Equal(before, after)
	s.Equal(StatePendingProfile, s.service.State())

	s.backend.failWrites = false
	_, err = s.service.SubmitProfile(s.ctx, completeForm())
	s.Require().NoError(err)
	s.Equal(StateActive, s.service.State())
}

func (s *GateSuite) TestLogoutFromEveryState() {
	s.Run("unauthenticated", func() {
		s.NoError(s.service.Logout(s.ctx))
		s.Equal(StateUnauthenticated, s.service.State())
	})

	s.Run("pending profile", func() {
		_, err := s.service.Login(s.ctx, "petrov@gov27.ru", directory.DemoSecret)
		s.Require().NoError(err)
		s.NoError(s.service.Logout(s.ctx))
		s.Equal(StateUnauthenticated, s.service.State())
		s.Equal(StateUnauthenticated, s.newService().Start(s.ctx))
	})

	s.Run("active", func() {
		_, err := s.service.Login(s.ctx, "admin@gov27.ru", directory.DemoSecret)
		s.Require().NoError(err)
		s.NoError(s.service.Logout(s.ctx))
		_, ok := s.service.Current()
		s.False(ok)
		s.Equal(StateUnauthenticated, s.newService().Start(s.ctx))
	})
}
