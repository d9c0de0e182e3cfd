package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"portal/internal/app"
	"portal/internal/auth/models"
	"portal/internal/auth/service"
	"portal/internal/platform/config"
	"portal/internal/shell"
	"portal/internal/view"
	"portal/pkg/requestcontext"
)

var (
	home      string
	backend   string
	requested string

	appCtx *app.App
	state  service.State
)

// errReported marks a failure the command already explained to the user.
var errReported = errors.New("reported")

// Execute runs the CLI against the process arguments.
func Execute(ctx context.Context) error {
	err := newRoot(os.Stdin, os.Stdout).ExecuteContext(ctx)
	finish(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

// finish flushes metrics and releases the backend. It runs on failure too,
// which PersistentPostRun would not.
func finish(ctx context.Context) {
	if appCtx == nil {
		return
	}
	if err := appCtx.WriteMetrics(); err != nil {
		appCtx.Logger.WarnContext(ctx, "failed to write metrics textfile", "error", err)
	}
	if err := appCtx.Close(); err != nil {
		appCtx.Logger.WarnContext(ctx, "failed to close session backend", "error", err)
	}
	appCtx = nil
}

func newRoot(in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "portal",
		Short:         "Corporate portal terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home != "" {
				if err := os.Setenv("PORTAL_HOME", home); err != nil {
					return err
				}
			}
			if backend != "" {
				if err := os.Setenv("PORTAL_SESSION_BACKEND", backend); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := requestcontext.WithRequestID(cmd.Context(), uuid.NewString())
			appCtx, err = app.New(ctx, cfg)
			if err != nil {
				return err
			}
			state = appCtx.Auth.Start(ctx)
			if identity, ok := appCtx.Auth.Current(); ok {
				ctx = requestcontext.WithIdentityID(ctx, identity.ID)
			}
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd, view.View(requested))
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.portal)")
	root.PersistentFlags().StringVar(&backend, "session-backend", "", "session storage: file, sqlite, redis or memory")
	root.Flags().StringVar(&requested, "view", string(view.Dashboard), "screen to open once logged in")

	root.AddCommand(statusCmd(), loginCmd(), logoutCmd(), profileCmd(), dashboardCmd(), refsCmd())
	return root
}

func renderer(cmd *cobra.Command) *shell.Renderer {
	return shell.NewRenderer(cmd.OutOrStdout(), appCtx.References)
}

// render draws whatever screen the gate allows for requested.
func render(cmd *cobra.Command, requested view.View) error {
	ctx := cmd.Context()
	r := renderer(cmd)
	identity, _ := appCtx.Auth.Current()

	var role models.Role
	if identity != nil {
		role = identity.Role
	}
	v := view.Resolve(appCtx.Auth.State(), role, requested)
	switch v {
	case view.Login:
		r.LoginScreen()
	case view.FirstLogin:
		r.FirstLoginScreen(ctx, identity)
	case view.Profile:
		r.Header(identity, v)
		r.Profile(ctx, identity)
	case view.Dashboard:
		r.Header(identity, v)
		r.Dashboard(ctx, identity)
	case view.Admin:
		r.Header(identity, v)
		cmd.Println("Выберите раздел для управления: portal refs <раздел>")
	default:
		r.Header(identity, v)
		return r.References(ctx, v)
	}
	return nil
}
