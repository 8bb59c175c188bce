package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in with email and password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			userType, err := ctrl.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			ctrl.Flush()
			state := ctrl.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", state.UserName, userType)
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <name> <email> <password>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			userType, err := ctrl.Register(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			ctrl.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "account created, logged in as %s (%s)\n", args[0], userType)
			return nil
		},
	}
}

func newGuestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guest",
		Short: "Open an anonymous guest session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := ctrl.GuestLogin(cmd.Context()); err != nil {
				return err
			}
			ctrl.Flush()
			fmt.Fprintln(cmd.OutOrStdout(), "guest session opened")
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
