package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"portal/internal/auth/directory"
	"portal/internal/auth/service"
	"portal/internal/view"
	dErrors "portal/pkg/domain-errors"
)

func loginCmd() *cobra.Command {
	var passwordStdin bool
	cmd := &cobra.Command{
		Use:   "login [domain-account]",
		Short: "Log in with a domain account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			r := renderer(cmd)

			account := ""
			if len(args) == 1 {
				account = args[0]
			} else {
				cmd.Print("Доменная учетная запись: ")
				line, err := readLine(in)
				if err != nil {
					return err
				}
				account = line
			}

			secret, err := readSecret(cmd, in, passwordStdin)
			if err != nil {
				return err
			}

			cmd.PrintErrln("Вход в систему...")
			identity, err := appCtx.Auth.Login(cmd.Context(), account, secret)
			switch {
			case err == nil:
			case dErrors.HasCode(err, dErrors.CodeValidation):
				r.Error("Заполните все поля")
				return errReported
			case errors.Is(err, directory.ErrInvalidCredentials):
				r.Error("Неверные учетные данные")
				return errReported
			default:
				return err
			}

			r.Success("Вход выполнен: " + identity.DomainAccount)
			if service.StateOf(identity) == service.StatePendingProfile {
				return render(cmd, view.FirstLogin)
			}
			return render(cmd, view.Dashboard)
		},
	}
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

// readSecret prompts without echo on a terminal and falls back to reading a
// line otherwise.
func readSecret(cmd *cobra.Command, in *bufio.Reader, fromStdin bool) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && !fromStdin && term.IsTerminal(int(f.Fd())) {
		cmd.Print("Пароль: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	if !fromStdin {
		cmd.Print("Пароль: ")
	}
	return readLine(in)
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
