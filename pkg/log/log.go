package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 55 // base width for file paths
)

// 🎯 FileOperation represents one processed corpus file for logging
type FileOperation struct {
	Path      string // file path relative to the corpus root
	Lines     int    // lines seen
	Rewritten int    // directive lines rewritten
	DryRun    bool   // whether the file was left untouched
}

// 📦 PhaseOperation represents one migration phase for logging
type PhaseOperation struct {
	Name  string // phase name
	Root  string // subtree being walked
	Files int    // candidate files found
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	files   int
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
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

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.DryRun && op.Rewritten > 0:
		symbol = '⟳'
		symbolColor = color.FgYellow
		status = fmt.Sprintf("would rewrite %d/%d lines", op.Rewritten, op.Lines)
	case op.Rewritten > 0:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = fmt.Sprintf("rewrote %d/%d lines", op.Rewritten, op.Lines)
	default:
		symbol = '-'
		symbolColor = color.Faint
		status = "unchanged"
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		status)
}

// 📝 LogFileOperation logs a processed file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.files++

	// unchanged files stay off the console to keep large corpora readable
	if op.Rewritten > 0 {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
	}

	l.zlog.Debug().
		Str("file", op.Path).
		Int("lines", op.Lines).
		Int("rewritten", op.Rewritten).
		Bool("dry_run", op.DryRun).
		Msg("file operation")
}

// 📝 StartPhase starts a new migration phase
func (l *Logger) StartPhase(ctx context.Context, op PhaseOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.files = 0

	fmt.Fprintf(l.console, "[migrating %s]\n",
		color.New(color.FgCyan).Sprint(op.Root))
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		fmt.Sprintf("%d candidate files", op.Files))

	l.zlog.Info().
		Str("phase", op.Name).
		Str("root", op.Root).
		Int("files", op.Files).
		Msg("starting phase")
}

// 📝 EndPhase ends the current migration phase
func (l *Logger) EndPhase(ctx context.Context, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Info().
		Str("phase", name).
		Int("files", l.files).
		Msg("phase complete")
	l.files = 0
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("migrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Success.WithWriter(l.console).Println(msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Warning.WithWriter(l.console).Println(msg)
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Error.WithWriter(l.console).Println(msg)
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

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}
