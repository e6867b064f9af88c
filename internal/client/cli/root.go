package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/rollcall/internal/client/client"
	"github.com/dmitrijs2005/rollcall/internal/client/config"
	"github.com/dmitrijs2005/rollcall/internal/voice"
	"github.com/spf13/cobra"
)

// newClient is a test seam for dialing the server.
var newClient = func(addr string) (client.Client, error) {
	return client.NewGRPCClient(addr)
}

// withSession dials the server, logs in, runs fn and logs out again.
func withSession(cfg *config.Config, fn func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cfg.ServerAddr)
		if err != nil {
			return err
		}
		defer c.Close()

		app := NewApp(cfg, c, cmd.InOrStdin(), cmd.OutOrStdout())
		ctx := cmd.Context()

		if err := app.Login(ctx); err != nil {
			return err
		}
		defer func() { _ = app.Logout(context.WithoutCancel(ctx)) }()

		return fn(ctx, cmd, app, args)
	}
}

// filterFlags constrains a column only when its flag was given, so
// --event "" matches the empty label while no --event matches all.
func filterFlags(cmd *cobra.Command, name, event string) client.Filter {
	var f client.Filter
	if cmd.Flags().Changed("name") {
		f.Name = &name
	}
	if cmd.Flags().Changed("event") {
		f.Event = &event
	}
	return f
}

// NewRootCmd builds the rollcall command tree over cfg. Flags write into
// cfg, so they take precedence over the environment.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "rollcall",
		Short:         "Mark and report attendance on a rollcall server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfg.ServerAddr, "addr", "a", cfg.ServerAddr, "address and port of the rollcall server")
	pf.StringVarP(&cfg.Username, "user", "u", cfg.Username, "operator username")
	pf.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout of each server call")

	root.AddCommand(
		newProvisionCmd(cfg),
		newMarkCmd(cfg),
		newMarkVoiceCmd(cfg),
		newReportCmd(cfg),
		newDailyCmd(cfg),
		newExportCmd(cfg),
		newReplCmd(cfg),
	)
	return root
}

func newProvisionCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "provision [username]",
		Short: "Create an operator account (admin only)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withSession(cfg, func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			username := ""
			if len(args) == 1 {
				username = args[0]
			}
			return app.Provision(ctx, username)
		}),
	}
}

func newMarkCmd(cfg *config.Config) *cobra.Command {
	var event string
	cmd := &cobra.Command{
		Use:   "mark <name>",
		Short: "Mark a person present",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(cfg, func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			return app.Mark(ctx, strings.Join(args, " "), event)
		}),
	}
	cmd.Flags().StringVarP(&event, "event", "e", "", "event label (default General)")
	return cmd
}

func newMarkVoiceCmd(cfg *config.Config) *cobra.Command {
	var event string
	cmd := &cobra.Command{
		Use:   "mark-voice",
		Short: "Mark the person whose name is read from the speech input",
		Long:  "Reads one transcribed utterance per line from standard input and marks that name present.",
		Args:  cobra.NoArgs,
		RunE: withSession(cfg, func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			return app.MarkVoice(ctx, voice.NewLineInput(cmd.InOrStdin()), cfg.Language, event)
		}),
	}
	cmd.Flags().StringVarP(&event, "event", "e", "", "event label (default General)")
	cmd.Flags().StringVarP(&cfg.Language, "language", "l", cfg.Language, "recognition language: "+strings.Join(voice.SupportedLanguages, ", "))
	return cmd
}

func newReportCmd(cfg *config.Config) *cobra.Command {
	var name, event string
	var asCSV bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "List attendance records in insertion order",
		Args:  cobra.NoArgs,
		RunE: withSession(cfg, func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			return app.Report(ctx, filterFlags(cmd, name, event), asCSV)
		}),
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "only records with exactly this name")
	cmd.Flags().StringVarP(&event, "event", "e", "", "only records with exactly this event label")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print CSV (name,timestamp,event)")
	return cmd
}

func newDailyCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Show attendance counts per day",
		Args:  cobra.NoArgs,
		RunE: withSession(cfg, func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			return app.Daily(ctx)
		}),
	}
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var name, event string
	var keep bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish a CSV report and print its download link",
		Args:  cobra.NoArgs,
		RunE: withSession(cfg, func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			return app.Export(ctx, filterFlags(cmd, name, event), keep)
		}),
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "only records with exactly this name")
	cmd.Flags().StringVarP(&event, "event", "e", "", "only records with exactly this event label")
	cmd.Flags().BoolVar(&keep, "save", false, "also download the report into ./"+ReportsDir)
	return cmd
}

func newReplCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session",
		Args:  cobra.NoArgs,
		RunE: withSession(cfg, func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
			runREPL(ctx, app, app.status, app.reader, app.out, cfg.Language)
			return nil
		}),
	}
}
