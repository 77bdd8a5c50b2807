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
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	iconIndent = 4  // spaces to indent icon entries
	nameWidth  = 35 // Base width for icon name
	sizeWidth  = 10 // Width for byte count
)

// 🎯 IconOperation represents one exported (or failed) icon for logging
type IconOperation struct {
	Name  string // Icon name as requested
	Path  string // Destination file
	Bytes int64  // Bytes written
	Err   error  // Set when the export failed
}

// 📦 BatchOperation represents a multi-icon export for logging
type BatchOperation struct {
	Source      string // Source description
	Destination string // Output directory
	Total       int    // Number of icons in the batch
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *BatchOperation
	operations []IconOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
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

// 📝 formatIconOperation formats an icon operation for display
func (l *Logger) formatIconOperation(op IconOperation) string {
	indent := fmt.Sprintf("%*s", iconIndent, "")
	name := fmt.Sprintf("%-*s", nameWidth, op.Name)

	if op.Err != nil {
		return fmt.Sprintf("%s%s %s %s",
			indent,
			color.New(color.FgRed).Sprint("✗"),
			name,
			color.New(color.FgRed).Sprint(op.Err.Error()))
	}

	return fmt.Sprintf("%s%s %s %s %s",
		indent,
		color.New(color.FgGreen).Sprint("✓"),
		name,
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", sizeWidth, humanize.Bytes(uint64(op.Bytes)))),
		color.New(color.Faint).Sprint(op.Path))
}

// 📝 LogIconOperation logs an icon operation
func (l *Logger) LogIconOperation(ctx context.Context, op IconOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to operations list
	l.operations = append(l.operations, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatIconOperation(op))

	// Log to zerolog
	event := l.zlog.Info()
	if op.Err != nil {
		event = l.zlog.Warn().Err(op.Err)
	}
	event.
		Str("icon", op.Name).
		Str("path", op.Path).
		Int64("bytes", op.Bytes).
		Msg("icon operation")
}

// 📝 StartBatch starts a new batch operation
func (l *Logger) StartBatch(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	// Print batch header
	fmt.Fprintf(l.console, "[exporting to %s]\n",
		color.New(color.FgCyan).Sprint(op.Destination))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Source),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d icons", op.Total))

	// Log to zerolog
	l.zlog.Info().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Int("total", op.Total).
		Msg("starting batch")
}

// 📝 EndBatch ends the current batch and prints its summary.
// It returns the number of successful and failed icons.
func (l *Logger) EndBatch(ctx context.Context) (succeeded, failed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return 0, 0
	}

	for _, op := range l.operations {
		if op.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}

	fmt.Fprintln(l.console)
	if failed == 0 {
		fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprintf("%d exported", succeeded))
	} else {
		fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprintf("%d exported, %d failed", succeeded, failed))
	}

	// Log summary
	l.zlog.Info().
		Str("destination", l.currentOp.Destination).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("batch complete")

	l.currentOp = nil
	l.operations = nil
	return succeeded, failed
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	iconrcText := color.New(color.Bold, color.FgCyan).Sprint("iconrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", iconrcText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
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

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
