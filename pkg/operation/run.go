package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/restyle/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Run rewrites every project index page in place, then prints the
// completion notice. The first failure aborts the run; pages already
// written stay written.
func (r *Rewriter) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("root", r.root).Bool("dry_run", r.dryRun).Msg("starting run")

	dirs, err := r.projectDirs(ctx)
	if err != nil {
		return err
	}

	if r.dryRun {
		r.logger.Header("dry run of " + r.root)
	} else {
		r.logger.Header("rewriting " + r.root)
	}

	// one project at a time: check, read, transform, write
	for _, dir := range dirs {
		index, ok := r.indexFile(ctx, dir)
		if !ok {
			continue
		}
		if err := r.processFile(ctx, index); err != nil {
			return err
		}
	}

	files, err := r.store.ListFiles(ctx)
	if err != nil {
		return errors.Errorf("listing tracked files: %w", err)
	}
	r.logger.Completed(ctx, r.store.Summary(ctx), files)
	return nil
}

func (r *Rewriter) processFile(ctx context.Context, path string) error {
	display := r.displayPath(path)

	if r.dryRun {
		result, err := r.transform(ctx, path)
		if err != nil {
			return err
		}
		if result.WasModified {
			r.logger.Pending(ctx, display, result.ReplacementCount)
			r.store.TrackFile(ctx, path, status.FileInfo{
				Status:       status.StatusPending,
				Replacements: result.ReplacementCount,
				Size:         int64(len(result.ModifiedContent)),
			})
		} else {
			r.store.TrackFile(ctx, path, status.FileInfo{Status: status.StatusUnchanged})
		}
		return nil
	}

	r.logger.Updating(ctx, display)

	result, err := r.transform(ctx, path)
	if err != nil {
		return err
	}

	// written back even when unchanged, the run is a plain overwrite
	if err := r.store.WriteFile(ctx, path, result.ModifiedContent); err != nil {
		return errors.Errorf("writing %s: %w", display, err)
	}

	fileStatus := status.StatusUnchanged
	if result.WasModified {
		fileStatus = status.StatusUpdated
	}
	r.store.TrackFile(ctx, path, status.FileInfo{
		Status:       fileStatus,
		Replacements: result.ReplacementCount,
		Size:         int64(len(result.ModifiedContent)),
	})

	r.logger.Updated(ctx, display, result.ReplacementCount)
	return nil
}

// Status lists the index pages the rules would change, relative to the
// root, without writing anything.
func (r *Rewriter) Status(ctx context.Context) ([]string, error) {
	dirs, err := r.projectDirs(ctx)
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, dir := range dirs {
		file, ok := r.indexFile(ctx, dir)
		if !ok {
			continue
		}
		result, err := r.transform(ctx, file)
		if err != nil {
			return nil, err
		}
		if result.WasModified {
			pending = append(pending, file)
		}
	}

	return pending, nil
}
