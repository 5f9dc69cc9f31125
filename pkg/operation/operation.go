package operation

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/restyle/pkg/log"
	"github.com/walteh/restyle/pkg/status"
	"github.com/walteh/restyle/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// IndexFile is the page rewritten in every project directory
const IndexFile = "index.html"

// Store is what the rewriter needs from the status package
type Store interface {
	status.FileManager
	status.StatusReporter
}

// Options configures a Rewriter
type Options struct {
	// Root is the projects directory, used to print file paths
	Root string
	// Store reads, writes and tracks files under Root
	Store Store
	// Replacer applies Rules
	Replacer text.TextReplacer
	// Rules defaults to text.ProjectPageRules()
	Rules []text.ReplacementRule
	// Logger prints progress
	Logger *log.Logger
	// Skip holds glob patterns of project directory names to leave out
	Skip []string
	// DryRun reports files that would change without writing them
	DryRun bool
}

// Rewriter applies the replacement rules to the index page of every project
// directory, one directory at a time.
type Rewriter struct {
	root     string
	store    Store
	replacer text.TextReplacer
	rules    []text.ReplacementRule
	logger   *log.Logger
	skip     []string
	dryRun   bool
}

// New validates opts and returns a Rewriter
func New(opts Options) (*Rewriter, error) {
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewSimpleTextReplacer()
	}
	if opts.Rules == nil {
		opts.Rules = text.ProjectPageRules()
	}
	if err := opts.Replacer.ValidateRules(opts.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	for _, pattern := range opts.Skip {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid skip pattern %q", pattern)
		}
	}

	return &Rewriter{
		root:     opts.Root,
		store:    opts.Store,
		replacer: opts.Replacer,
		rules:    opts.Rules,
		logger:   opts.Logger,
		skip:     opts.Skip,
		dryRun:   opts.DryRun,
	}, nil
}

// projectDirs lists the project directories under the root, leaving out
// the ones matching a skip pattern
func (r *Rewriter) projectDirs(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	dirs, err := r.store.ListDirs(ctx)
	if err != nil {
		return nil, errors.Errorf("listing project directories: %w", err)
	}

	kept := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if r.shouldSkip(dir) {
			logger.Debug().Str("project", dir).Msg("project skipped by pattern")
			continue
		}
		kept = append(kept, dir)
	}

	return kept, nil
}

// indexFile returns the index page of dir, relative to the root. A project
// without one is tracked as skipped and reports false.
func (r *Rewriter) indexFile(ctx context.Context, dir string) (string, bool) {
	index := filepath.Join(dir, IndexFile)
	if !r.store.FileExists(ctx, index) {
		r.store.TrackFile(ctx, index, status.FileInfo{Status: status.StatusSkipped})
		return "", false
	}
	return index, true
}

func (r *Rewriter) shouldSkip(dir string) bool {
	for _, pattern := range r.skip {
		if matched, _ := doublestar.Match(pattern, dir); matched {
			return true
		}
	}
	return false
}

func (r *Rewriter) displayPath(path string) string {
	return filepath.Join(r.root, path)
}

// transform reads path and applies the rules to its content
func (r *Rewriter) transform(ctx context.Context, path string) (*text.ReplacementResult, error) {
	content, err := r.store.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", r.displayPath(path), err)
	}

	result, err := r.replacer.ReplaceText(ctx, bytes.NewReader(content), r.rules)
	if err != nil {
		return nil, errors.Errorf("replacing text in %s: %w", r.displayPath(path), err)
	}

	return result, nil
}
