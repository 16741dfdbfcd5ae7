package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all tasks and restore the default projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to reset without --force in a non-interactive session")
				}
				ok, err := runConfirm("Erase all tasks and projects?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := app.Store.ClearAllUserData(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All data erased. Default projects restored.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
