package commands

import (
	"context"

	"github.com/walteh/restyle/cmd/restyle/opts"
	"github.com/walteh/restyle/pkg/log"
	"github.com/walteh/restyle/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

func newRewriter(ctx context.Context, o *opts.RootOpts) (*operation.Rewriter, error) {
	rw, err := operation.New(operation.Options{
		Root:   o.Config.Root,
		Store:  o.Store,
		Logger: log.FromContext(ctx),
		Skip:   o.Config.Skip,
		DryRun: o.Config.DryRun,
	})
	if err != nil {
		return nil, errors.Errorf("creating rewriter: %w", err)
	}
	return rw, nil
}

// Run rewrites every project page under the configured root
func Run(ctx context.Context, o *opts.RootOpts) error {
	rw, err := newRewriter(ctx, o)
	if err != nil {
		return err
	}

	if err := rw.Run(ctx); err != nil {
		return errors.Errorf("updating project pages: %w", err)
	}

	return nil
}
