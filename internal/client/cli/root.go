package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/storepulse/internal/client/config"
	"github.com/dmitrijs2005/storepulse/internal/client/router"
	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/common"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

// getSecret is an indirection over GetSecret so tests can stub the
// terminal.
var getSecret = GetSecret

type rootOptions struct {
	configFile string
	apiBaseURL string
	sessionDB  string
	logLevel   string
}

func (o *rootOptions) overrides() config.Overrides {
	return config.Overrides{
		ConfigFile: o.configFile,
		APIBaseURL: o.apiBaseURL,
		SessionDB:  o.sessionDB,
		LogLevel:   o.logLevel,
	}
}

// NewRootCommand builds the storepulse command tree. Without a
// subcommand it starts the REPL.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "storepulse",
		Short: "Terminal console for StorePulse storefront analytics",
		Long: `storepulse shows the StorePulse dashboards in a terminal.

The console keeps the login response in a local sqlite store and decides
from its role which views are available: tenants see their dashboard,
admins see the tenant listing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *App) error { return a.Root(ctx) })
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "config file (.json, .jsonc, .yaml)")
	pf.StringVarP(&opts.apiBaseURL, "api", "a", "", "backend base URL")
	pf.StringVarP(&opts.sessionDB, "db", "d", "", "local store sqlite file")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		&cobra.Command{
			Use:   "repl",
			Short: "Start the interactive console",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, a *App) error { return a.Root(ctx) })
			},
		},
		&cobra.Command{
			Use:   "dashboard",
			Short: "Show the default view of the stored session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, a *App) error { return a.Start(ctx) })
			},
		},
		&cobra.Command{
			Use:   "tenants",
			Short: "List tenants (admin)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, a *App) error { return a.Go(ctx, router.TenantsPath) })
			},
		},
		&cobra.Command{
			Use:   "analytics <tenant-id>",
			Short: "Show the analytics of one tenant",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, a *App) error { return a.Tenant(ctx, args[0]) })
			},
		},
		&cobra.Command{
			Use:   "customers",
			Short: "List the customers of every tenant (admin)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, a *App) error { return a.Customers(ctx) })
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Wipe the local store",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, a *App) error { return a.Logout(ctx) })
			},
		},
		newSessionCommand(opts),
	)
	return root
}

func newSessionCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the stored login session",
	}

	var in importOptions
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Store a login response as the current session",
		Long: `Store a login response as the current session.

Either pass the fields as flags (the access token is prompted for without
echo when --token is omitted) or paste the whole JSON login response with
--json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *App) error { return a.ImportSession(ctx, in) })
		},
	}
	f := importCmd.Flags()
	f.StringVar(&in.role, "role", string(session.RoleTenant), "role: isTenant or isAdmin")
	f.StringVar(&in.tenantID, "tenant", "", "tenant id (required for isTenant)")
	f.StringVar(&in.email, "email", "", "account email, used by sync")
	f.StringVar(&in.tokenType, "token-type", "Bearer", "authorization scheme")
	f.StringVar(&in.token, "token", "", "access token; prompted when empty")
	f.BoolVar(&in.json, "json", false, "read the JSON login response from stdin")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *App) error { return a.WhoAmI(ctx) })
		},
	}

	cmd.AddCommand(importCmd, showCmd)
	return cmd
}

type importOptions struct {
	role      string
	tenantID  string
	email     string
	tokenType string
	token     string
	json      bool
}

// ImportSession stores a login response and lands on the role's default
// view.
func (a *App) ImportSession(ctx context.Context, in importOptions) error {
	if in.json {
		raw, err := GetMultiline(a.reader, "Paste the login response JSON", a.out)
		if err != nil {
			return err
		}
		if err := a.sessionSvc.ImportJSON(ctx, []byte(raw)); err != nil {
			return err
		}
	} else {
		token := in.token
		if token == "" {
			secret, err := getSecret(a.out, "Access token")
			if err != nil {
				return err
			}
			token = strings.TrimSpace(string(secret))
			common.WipeByteArray(secret)
		}
		sess := session.Session{
			TenantID:    in.tenantID,
			Role:        session.Role(in.role),
			AccessToken: token,
			TokenType:   in.tokenType,
			Email:       in.email,
		}
		if err := a.sessionSvc.Import(ctx, sess); err != nil {
			return err
		}
	}

	a.println(a.styles.Success.Render("Session stored."))
	return a.Start(ctx)
}

// withApp loads configuration, builds the App for one command run and
// tears it down afterwards.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.overrides())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logging.New(cfg.LogLevel, cmd.ErrOrStderr())

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn(ctx, "closing local store", "error", err)
		}
	}()
	app.out = cmd.OutOrStdout()
	app.reader = bufio.NewReader(cmd.InOrStdin())

	err = fn(ctx, app)
	app.flushNotifications()
	return err
}

// Execute runs the command tree under ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
