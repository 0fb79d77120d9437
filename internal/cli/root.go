// Package cli implements the datasync command-line client.
//
// Every subcommand issues exactly one command against the configured
// collection, waits for the snapshot to settle and prints its value.
// A failed snapshot is reported as the command's error.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/zoobzio/datasync"
	"github.com/zoobzio/datasync/internal/config"
	"github.com/zoobzio/datasync/internal/logging"
	"github.com/zoobzio/datasync/transport"
)

// Version is set at build time.
var Version = "dev"

// app holds state shared by subcommands for one invocation.
type app struct {
	flags struct {
		configFile string
		envFiles   []string
	}
	cfg    *config.Config
	logger *slog.Logger
	svc    *datasync.Service[Record]
}

// NewRootCommand builds the datasync command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "datasync",
		Short: "Synchronize a REST collection from the command line",
		Long: `datasync loads, creates, updates and deletes resources of one REST
collection. Mutations are followed by a reload of the whole collection,
which is what gets printed.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configFile, "config", "", "config file (default: ./datasync.yaml)")
	pf.StringSliceVar(&a.flags.envFiles, "env-file", nil, "dotenv files to load (default: ./.env)")
	pf.String("base-url", "", "collection address")
	pf.String("format", "", "output format: json or yaml")
	pf.Duration("timeout", 0, "time limit for the whole command")
	pf.String("token", "", "bearer token")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text or json")

	root.AddCommand(
		a.listCommand(),
		a.getCommand(),
		a.createCommand(),
		a.updateCommand(),
		a.deleteCommand(),
		versionCommand(),
	)
	return root
}

// Execute runs the CLI with the process streams.
func Execute(ctx context.Context, out, errOut io.Writer, args []string) error {
	root := NewRootCommand(out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// setup resolves configuration and builds the service.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.Load(config.Options{
		ConfigFile: a.flags.configFile,
		EnvFiles:   a.flags.envFiles,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	opts := []transport.Option{transport.WithTimeout(cfg.Timeout)}
	if cfg.Token != "" {
		opts = append(opts, transport.WithToken(cfg.Token))
	}

	a.cfg = cfg
	a.logger = logger
	a.svc = datasync.New[Record](transport.NewHTTPClient(opts...), cfg.BaseURL).Logger(logger)
	return nil
}

// run issues one command and waits for the snapshot it produces.
func (a *app) run(cmd *cobra.Command, issue func(*datasync.Service[Record])) error {
	defer a.svc.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout)
	defer cancel()

	results := make(chan datasync.DataResult[Record], 1)
	unsubscribe := a.svc.Subscribe(func(r datasync.DataResult[Record]) {
		select {
		case results <- r:
		default:
		}
	})
	defer unsubscribe()

	issue(a.svc)

	var r datasync.DataResult[Record]
	select {
	case r = <-results:
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s: no result within %s", cmd.Name(), a.cfg.Timeout)
		}
		return ctx.Err()
	}

	if r.Failed() {
		a.logger.Debug("command failed", "command", cmd.Name(), "error", r.Error.Message)
		return fmt.Errorf("%s: %s", cmd.Name(), r.Error.Message)
	}
	return printValue(cmd.OutOrStdout(), a.cfg.Format, r.Value)
}
