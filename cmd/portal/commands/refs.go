package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"portal/internal/view"
)

var referenceViews = []string{
	string(view.Ministries),
	string(view.Departments),
	string(view.Positions),
	string(view.Addresses),
	string(view.Resources),
}

func refsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "refs <ministries|departments|positions|addresses|resources>",
		Short:     "List a reference set (admins only)",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: referenceViews,
		RunE: func(cmd *cobra.Command, args []string) error {
			requested := view.View(args[0])
			identity, _ := appCtx.Auth.Current()
			if identity == nil || !identity.IsAdmin() {
				return fmt.Errorf("раздел %q доступен только администраторам", args[0])
			}
			return render(cmd, requested)
		},
	}
}
