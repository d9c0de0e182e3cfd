package commands

import (
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, ok := appCtx.Auth.Current()
			if !ok {
				cmd.Println(state.String())
				return nil
			}
			cmd.Printf("%s %s %s\n", appCtx.Auth.State(), identity.DomainAccount, identity.Role)
			return nil
		},
	}
}
