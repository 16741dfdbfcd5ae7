package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/cli/formatter"
)

func newAccountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the local account",
	}
	cmd.AddCommand(
		newAccountLoginCmd(app),
		newAccountWhoamiCmd(app),
		newAccountLogoutCmd(app),
		newAccountDeleteCmd(app),
	)
	return cmd
}

func newAccountLoginCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in with an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Identity.SignIn(cmd.Context(), name, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s <%s>\n", formatter.Bold(user.DisplayName), user.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	return cmd
}

func newAccountWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.Identity.CurrentUser()
			if user == nil {
				fmt.Println(formatter.Dim("Not signed in."))
				return nil
			}
			fmt.Printf("%s <%s>\n", formatter.Bold(user.DisplayName), user.Email)
			fmt.Println(formatter.Dim(user.UID))
			return nil
		},
	}
}

func newAccountLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the local account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Identity.SignOut(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newAccountDeleteCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account and erase all stored data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Identity.CurrentUser() == nil {
				return fmt.Errorf("not signed in")
			}
			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete the account without --force in a non-interactive session")
				}
				ok, err := runConfirm("Delete your account and all tasks, projects and sessions?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}

			// User data goes first so the account record never outlives it.
			if err := app.Store.ClearAllUserData(cmd.Context()); err != nil {
				return err
			}
			if err := app.Identity.DeleteAccount(); err != nil {
				return err
			}
			fmt.Println("Account deleted.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
