// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/restyle/pkg/status"
)

// 🎨 Closing line printed after a completed run
const completedDetail = "project styles now match the ExoPlanetas project style"

// 🎯 Logger prints human progress to a console and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 Updating announces that path is about to be rewritten
func (l *Logger) Updating(ctx context.Context, path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "updating %s...\n", color.New(color.FgCyan).Sprint(path))
	l.zlog.Info().Str("file", path).Msg("updating file")
}

// 📝 Updated reports that path was rewritten
func (l *Logger) Updated(ctx context.Context, path string, replacements int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s updated\n", color.New(color.FgGreen).Sprint("✓"), path)
	l.zlog.Info().Str("file", path).Int("replacements", replacements).Msg("file updated")
}

// 📝 Pending reports a file that a real run would rewrite
func (l *Logger) Pending(ctx context.Context, path string, replacements int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s %s\n",
		color.New(color.FgYellow).Sprint("⟳"),
		path,
		color.New(color.Faint).Sprintf("[%d]", replacements))
	l.zlog.Info().Str("file", path).Int("replacements", replacements).Msg("file pending")
}

// 📝 Completed prints the completion banner and a table of the index pages
// that were found
func (l *Logger) Completed(ctx context.Context, summary status.Summary, files []status.FileInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console)
	fmt.Fprintln(l.console, pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Sprint("process completed!"))
	if summary.Pending > 0 && summary.Updated == 0 {
		fmt.Fprintf(l.console, "%d project pages would change, nothing was written\n", summary.Pending)
	} else {
		fmt.Fprintln(l.console, completedDetail)
	}

	data := pterm.TableData{{"page", "status", "replacements"}}
	for _, f := range files {
		if f.Status == status.StatusSkipped {
			continue
		}
		data = append(data, []string{f.Path, f.Status.String(), strconv.Itoa(f.Replacements)})
	}
	data = append(data, []string{"total " + strconv.Itoa(summary.Total()), "", strconv.Itoa(summary.Replacements)})

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		l.zlog.Debug().Err(err).Msg("rendering summary table")
	} else {
		fmt.Fprintln(l.console)
		fmt.Fprintln(l.console, table)
	}

	l.zlog.Info().
		Int("pages", summary.Total()).
		Int("updated", summary.Updated).
		Int("unchanged", summary.Unchanged).
		Int("pending", summary.Pending).
		Int("skipped", summary.Skipped).
		Int("replacements", summary.Replacements).
		Msg("process completed")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("restyle")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
