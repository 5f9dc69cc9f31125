package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/restyle/cmd/restyle/commands"
	"github.com/walteh/restyle/cmd/restyle/opts"
	"github.com/walteh/restyle/pkg/config"
	"github.com/walteh/restyle/pkg/log"
	"github.com/walteh/restyle/pkg/status"
	"gitlab.com/tozd/go/errors"
)

type rootFlags struct {
	configFile string
	root       string
	debug      bool
	dryRun     bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "restyle",
		Short: "Align project pages with the shared project-page style",
		Long: `restyle rewrites the index.html of every project directory in place.
For each page it will:
1. Add the project-page class to the body tag
2. Add bottom spacing to primary buttons
3. Close the GitHub and demo link icons`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd, stderr, flags.debug)

			load := config.LoadOrDefault
			if cmd.Flags().Changed("config") {
				load = config.Load
			}
			cfg, err := load(ctx, flags.configFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			if cmd.Flags().Changed("root") {
				cfg.Root = flags.root
			}
			if flags.dryRun {
				cfg.DryRun = true
			}
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating config: %w", err)
			}
			zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration loaded")

			rootOpts.Config = cfg
			rootOpts.Store = status.NewManager(cfg.Root, status.NewDefaultFileFormatter())
			cmd.SetContext(log.NewContext(ctx, log.New(stdout, *zerolog.Ctx(ctx))))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Run(cmd.Context(), rootOpts)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", config.DefaultFile, "config file path")
	cmd.PersistentFlags().StringVarP(&flags.root, "root", "r", config.DefaultRoot, "projects directory")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "report pages that would change without writing them")

	cmd.AddCommand(commands.NewStatusCmd(rootOpts))

	return cmd
}

// setupLogging puts a zerolog logger writing to stderr into the command
// context and returns that context
func setupLogging(cmd *cobra.Command, stderr io.Writer, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()

	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)
	return ctx
}
