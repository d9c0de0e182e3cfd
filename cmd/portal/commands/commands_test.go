package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CommandsSuite struct {
	suite.Suite
	home string
}

func TestCommandsSuite(t *testing.T) {
	suite.Run(t, new(CommandsSuite))
}

func (s *CommandsSuite) SetupTest() {
	s.home = s.T().TempDir()
	s.T().Setenv("PORTAL_HOME", s.home)
	s.T().Setenv("PORTAL_SESSION_BACKEND", "file")
	s.T().Setenv("PORTAL_AUTH_LATENCY", "0s")
	s.T().Setenv("PORTAL_METRICS_TEXTFILE", filepath.Join(s.home, "portal.prom"))
}

// run executes one CLI invocation, as a separate process would.
func (s *CommandsSuite) run(stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	root := newRoot(strings.NewReader(stdin), &out)
	root.SetArgs(args)
	ctx := context.Background()
	err := root.ExecuteContext(ctx)
	finish(ctx)
	return out.String(), err
}

func (s *CommandsSuite) TestFirstLoginJourney() {
	out, err := s.run("")
	s.Require().NoError(err)
	s.Contains(out, "Корпоративный портал")

	out, err = s.run("password\n", "login", "petrov@gov27.ru", "--password-stdin")
	s.Require().NoError(err)
	s.Contains(out, "Завершение регистрации")

	out, err = s.run("", "status")
	s.Require().NoError(err)
	s.Contains(out, "pending_profile petrov@gov27.ru user")

	out, err = s.run("", "profile", "--email", "petrov")
	s.ErrorIs(err, errReported)
	s.Contains(out, "Фамилия: Поле обязательно для заполнения")
	s.Contains(out, "Введите корректный email")

	out, err = s.run("", "profile",
		"--last-name", "Петров", "--first-name", "Пётр", "--middle-name", "Петрович",
		"--ministry", "2", "--department", "3", "--position", "1", "--address", "2",
		"--office", "12", "--phone", "8 4212 55-66-77", "--internal-phone", "4455",
		"--email", "petrov@gov27.ru", "--check")
	s.ErrorIs(err, errReported, "8-prefixed numbers are not reformatted")
	s.Contains(out, "Формат: +7 (XXXX) XX-XX-XX")

	out, err = s.run("", "profile",
		"--last-name", "Петров", "--first-name", "Пётр", "--middle-name", "Петрович",
		"--ministry", "2", "--department", "3", "--position", "1", "--address", "2",
		"--office", "12", "--phone", "74212556677", "--internal-phone", "4455",
		"--email", "petrov@gov27.ru")
	s.Require().NoError(err, out)
	s.Contains(out, "Регистрация завершена")
	s.Contains(out, "Добро пожаловать, Пётр!")

	out, err = s.run("", "--view", "profile")
	s.Require().NoError(err)
	s.Contains(out, "+7 (4212) 55-66-77")
	s.Contains(out, "Отдел дошкольного образования")

	out, err = s.run("", "logout")
	s.Require().NoError(err)
	s.Contains(out, "Вы вышли из системы")

	out, err = s.run("", "status")
	s.Require().NoError(err)
	s.Contains(out, "unauthenticated")
}

func (s *CommandsSuite) TestWrongPassword() {
	out, err := s.run("nope\n", "login", "admin@gov27.ru", "--password-stdin")
	s.ErrorIs(err, errReported)
	s.Contains(out, "Неверные учетные данные")

	out, _ = s.run("", "status")
	s.Contains(out, "unauthenticated")
}

func (s *CommandsSuite) TestProfileWithoutSessionFails() {
	out, err := s.run("", "profile", "--email", "petrov@gov27.ru")
	s.ErrorIs(err, errReported)
	s.Contains(out, "Сначала войдите в систему")
	s.Contains(out, "Корпоративный портал")

	_, err = s.run("", "profile", "--check")
	s.ErrorIs(err, errReported)
}

func (s *CommandsSuite) TestAdminScreens() {
	_, err := s.run("password\n", "login", "ivanov@gov27.ru", "--password-stdin")
	s.Require().NoError(err)
	_, err = s.run("", "refs", "ministries")
	s.Error(err)

	out, err := s.run("", "--view", "ministries")
	s.Require().NoError(err)
	s.Contains(out, "Добро пожаловать, Иван!")

	_, err = s.run("password\n", "login", "admin@gov27.ru", "--password-stdin")
	s.Require().NoError(err)
	out, err = s.run("", "refs", "departments")
	s.Require().NoError(err)
	s.Contains(out, "Отдел инвестиций")
}

func (s *CommandsSuite) TestUnknownBackendFails() {
	s.T().Setenv("PORTAL_SESSION_BACKEND", "etcd")
	_, err := s.run("", "status")
	s.ErrorContains(err, "etcd")
}
