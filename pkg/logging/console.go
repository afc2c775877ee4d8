package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
)

var (
	infoLabel  = color.New(color.FgGreen).Sprint("[INFO]")
	debugLabel = color.New(color.FgCyan).Sprint("[DEBUG]")
	traceLabel = color.New(color.FgYellow).Sprint("[TRACE]")
	errorLabel = color.New(color.FgRed).Sprint("[ERROR]")
)

// ConsoleSink is a logr.LogSink that writes human-readable, optionally
// colored lines. Key/value pairs are appended to the message line as
// key=value tokens.
type ConsoleSink struct {
	writer    io.Writer
	verbosity int
	name      string
	values    []interface{}
	noColor   bool
	mu        *sync.Mutex
}

// NewConsoleSink creates a sink writing to writer (os.Stderr if nil)
// that emits messages up to the given verbosity level.
func NewConsoleSink(writer io.Writer, verbosity int, useColor bool) *ConsoleSink {
	if writer == nil {
		writer = os.Stderr
	}
	return &ConsoleSink{
		writer:    writer,
		verbosity: verbosity,
		noColor:   !useColor,
		mu:        &sync.Mutex{},
	}
}

func (s *ConsoleSink) Init(info logr.RuntimeInfo) {}

func (s *ConsoleSink) Enabled(level int) bool {
	return level <= s.verbosity
}

func (s *ConsoleSink) Info(level int, msg string, keysAndValues ...interface{}) {
	if !s.Enabled(level) {
		return
	}
	s.write(s.label(level), msg, keysAndValues)
}

func (s *ConsoleSink) Error(err error, msg string, keysAndValues ...interface{}) {
	kv := append(append([]interface{}{}, keysAndValues...), "error", err)
	s.write(s.label(-1), msg, kv)
}

func (s *ConsoleSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	next := *s
	next.values = append(append([]interface{}{}, s.values...), keysAndValues...)
	return &next
}

func (s *ConsoleSink) WithName(name string) logr.LogSink {
	next := *s
	if s.name != "" {
		name = s.name + "." + name
	}
	next.name = name
	return &next
}

func (s *ConsoleSink) label(level int) string {
	var label string
	switch level {
	case -1:
		label = errorLabel
	case LEVEL_INFO:
		label = infoLabel
	case LEVEL_DEBUG:
		label = debugLabel
	case LEVEL_TRACE:
		label = traceLabel
	default:
		label = fmt.Sprintf("[LEVEL %d]", level)
	}
	if s.noColor {
		return stripLabel(level)
	}
	return label
}

func stripLabel(level int) string {
	switch level {
	case -1:
		return "[ERROR]"
	case LEVEL_INFO:
		return "[INFO]"
	case LEVEL_DEBUG:
		return "[DEBUG]"
	case LEVEL_TRACE:
		return "[TRACE]"
	default:
		return fmt.Sprintf("[LEVEL %d]", level)
	}
}

func (s *ConsoleSink) write(label, msg string, keysAndValues []interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := label + " "
	if s.name != "" {
		line += "[" + s.name + "] "
	}
	line += msg

	kv := append(append([]interface{}{}, s.values...), keysAndValues...)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprintf("key%d", i/2)
		}
		line += fmt.Sprintf(" %s=%v", key, kv[i+1])
	}

	fmt.Fprintln(s.writer, line)
}

// NewConsoleLogger creates a logr.Logger backed by a ConsoleSink.
func NewConsoleLogger(writer io.Writer, verbosity int, useColor bool) logr.Logger {
	return logr.New(NewConsoleSink(writer, verbosity, useColor))
}
