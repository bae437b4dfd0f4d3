package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	opIndent    = 4  // spaces to indent operation entries
	nameWidth   = 35 // Base width for the target filename
	countWidth  = 16 // Width for the replacement count column
	statusWidth = 10 // Width for status text
)

// 🎯 PatchOperation represents one patch attempt for logging
type PatchOperation struct {
	Target       string // Target file path
	Replacements int    // Number of occurrences replaced
	Status       string // Operation status
	Failed       bool   // Whether the operation failed
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger. Structured output goes to stderr so the
// console lines are the only stdout surface.
func New(console io.Writer, level zerolog.Level) *Logger {
	return NewWithSink(console, os.Stderr, level)
}

// 🏭 NewWithSink creates a new logger with an explicit structured-log sink
func NewWithSink(console, sink io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = sink
	})).With().Timestamp().Logger().Level(level)
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

// 📝 formatPatchOperation formats a patch operation for display
func (l *Logger) formatPatchOperation(op PatchOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	if op.Failed {
		symbol = '✗'
		symbolColor = color.FgRed
	} else {
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	count := fmt.Sprintf("%d replacements", op.Replacements)
	if op.Replacements == 1 {
		count = "1 replacement"
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", opIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Target),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", countWidth, count)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogPatchOperation logs a patch operation
func (l *Logger) LogPatchOperation(ctx context.Context, op PatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatPatchOperation(op))

	l.zlog.Info().
		Str("target", op.Target).
		Str("status", op.Status).
		Bool("failed", op.Failed).
		Int("replacements", op.Replacements).
		Msg("patch operation")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	patchrcText := color.New(color.Bold, color.FgCyan).Sprint("patchrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", patchrcText, color.New(color.Faint).Sprint("• "+msg))
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
