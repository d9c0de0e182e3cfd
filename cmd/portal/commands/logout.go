package commands

import (
	"github.com/spf13/cobra"
)

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Auth.Logout(cmd.Context()); err != nil {
				renderer(cmd).Error("Не удалось завершить сеанс")
				return err
			}
			renderer(cmd).Success("Вы вышли из системы")
			return nil
		},
	}
}
