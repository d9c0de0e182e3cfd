package commands

import (
	"github.com/spf13/cobra"

	"portal/internal/view"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the resource dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd, view.Dashboard)
		},
	}
}
