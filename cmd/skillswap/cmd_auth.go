package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Marga-Ghale/skill-swap/internal/client"
)

var (
	authEmail    string
	authPassword string
	authUsername string
)

// loginCmd exchanges credentials for a stored session
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		s, err := api.Login(ctx, authEmail, authPassword)
		if err != nil {
			return err
		}
		return remember(cmd, s)
	},
}

// signupCmd registers a member and logs in
var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		s, err := api.Signup(ctx, authEmail, authUsername, authPassword)
		if err != nil {
			return err
		}
		return remember(cmd, s)
	},
}

// logoutCmd revokes the refresh token and forgets the session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sess.RefreshToken != "" {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			if err := api.Logout(ctx, sess.RefreshToken); err != nil {
				logger.Warn("logout_failed", slog.Any("error", err))
			}
		}
		sess.Clear()
		if err := sess.Save(sessionPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Account password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
	signupCmd.Flags().StringVar(&authUsername, "username", "", "Public username")
	_ = signupCmd.MarkFlagRequired("username")
}

func remember(cmd *cobra.Command, s *client.Session) error {
	sess.AccessToken = s.Token
	sess.RefreshToken = s.RefreshToken
	sess.UserID = s.User.ID
	sess.UserName = s.User.Name
	if err := sess.Save(sessionPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s.\n", s.User.Name)
	return nil
}
