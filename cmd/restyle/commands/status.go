package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/restyle/cmd/restyle/opts"
	"github.com/walteh/restyle/pkg/log"
	"gitlab.com/tozd/go/errors"
)

func NewStatusCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List project pages that need updating",
		Long: `Status applies the replacement rules in memory and lists every
project page whose content would change. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			rw, err := newRewriter(ctx, o)
			if err != nil {
				return err
			}

			pending, err := rw.Status(ctx)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			if len(pending) == 0 {
				logger.Info("all project pages are up to date")
				return nil
			}

			for _, file := range pending {
				logger.Warningf("%s needs updating", filepath.Join(o.Config.Root, file))
			}
			logger.Infof("%d project pages need updating", len(pending))
			return nil
		},
	}

	return cmd
}
