package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Marga-Ghale/skill-swap/internal/client"
	"github.com/Marga-Ghale/skill-swap/internal/listing"
	"github.com/Marga-Ghale/skill-swap/internal/logging"
	"github.com/Marga-Ghale/skill-swap/internal/session"
)

var (
	// Global flags
	serverURL   string
	sessionPath string
	verbose     bool
	timeout     time.Duration

	sess   *session.Session
	api    *client.Client
	logger *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "skillswap",
	Short: "Trade skills with other members from the terminal",
	Long: `skillswap is the terminal client of the Skill Swap marketplace.

Log in once, then browse the member directory, send swap requests and
answer the requests other members send you. Run "skillswap browse" for the
interactive screen.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = logging.New(os.Stderr, level, false)

		if sessionPath == "" {
			path, err := session.DefaultPath()
			if err != nil {
				return err
			}
			sessionPath = path
		}
		var err error
		if sess, err = session.Load(sessionPath); err != nil {
			return err
		}
		if env := os.Getenv("SKILLSWAP_SERVER"); env != "" {
			sess.Server = env
		}
		if cmd.Flags().Changed("server") {
			sess.Server = serverURL
		}

		api = client.New(sess.Server, sess, client.WithLogger(logger))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", session.DefaultServer, "Backend base URL (or set SKILLSWAP_SERVER)")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "config", "", "Session file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "Request timeout")

	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd)
	rootCmd.AddCommand(membersCmd, memberCmd, rateCmd)
	rootCmd.AddCommand(requestsCmd, requestCmd, acceptCmd, rejectCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(browseCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// requestContext bounds one API call by the --timeout flag.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// requireLogin fails early instead of letting the server answer 401.
func requireLogin(cmd *cobra.Command, args []string) error {
	if !sess.LoggedIn() {
		return fmt.Errorf("not logged in: run \"skillswap login\" first")
	}
	return nil
}

// printer writes notifier output to the command's stdout or stderr.
func printer(cmd *cobra.Command) listing.Notifier {
	return listing.NotifierFunc(func(title, description string, severity listing.Severity) {
		var w io.Writer = cmd.OutOrStdout()
		if severity == listing.SeverityError {
			w = cmd.ErrOrStderr()
		}
		fmt.Fprintf(w, "%s %s\n", title, description)
	})
}
