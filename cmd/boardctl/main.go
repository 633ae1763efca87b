// Command boardctl drives the unit status board from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/estateflow/backend/internal/infrastructure/boardclient"
	"github.com/estateflow/backend/internal/infrastructure/i18n"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type options struct {
	profilePath string
	server      string
	token       string
	tenant      string
	locale      string
	output      string
	noColor     bool
}

type app struct {
	profile   Profile
	client    *boardclient.Client
	localizer *i18n.Localizer
	locale    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, FailStyle.Render(IconFail+" "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	a := &app{}

	root := &cobra.Command{
		Use:           "boardctl",
		Short:         "Inspect and move units on the status board",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.profilePath, "profile", "", "profile file (default $HOME/.config/boardctl/profile.toml)")
	flags.StringVar(&opts.server, "server", "", "API base URL")
	flags.StringVar(&opts.token, "token", "", "bearer token (or BOARDCTL_TOKEN)")
	flags.StringVar(&opts.tenant, "tenant", "", "tenant ID")
	flags.StringVar(&opts.locale, "locale", "", "display language (en, es, de)")
	flags.StringVarP(&opts.output, "output", "o", "", "output format: text, json or yaml")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newBoardCmd(a), newMoveCmd(a), newHistoryCmd(a))
	return root
}

func (a *app) init(opts *options) error {
	path := opts.profilePath
	if path == "" {
		path = DefaultProfilePath()
	}
	p, err := LoadProfile(path)
	if err != nil {
		return err
	}
	p = p.Merge(Profile{
		Server:   opts.server,
		Token:    firstNonEmpty(opts.token, os.Getenv("BOARDCTL_TOKEN")),
		TenantID: opts.tenant,
		Locale:   opts.locale,
		Output:   opts.output,
	})
	if err := p.Validate(); err != nil {
		return err
	}
	a.profile = p

	if opts.noColor || os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	a.localizer = i18n.NewLocalizer("en")
	a.locale = a.localizer.Negotiate(p.Locale)

	clientOpts := []boardclient.Option{boardclient.WithToken(p.Token)}
	if p.TenantID != "" {
		tenantID, err := uuid.Parse(p.TenantID)
		if err != nil {
			return fmt.Errorf("invalid tenant ID %q: %w", p.TenantID, err)
		}
		clientOpts = append(clientOpts, boardclient.WithTenant(tenantID))
	}
	a.client = boardclient.New(p.Server, clientOpts...)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
