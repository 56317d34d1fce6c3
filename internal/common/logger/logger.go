package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rakhimovb/staylist/internal/common/constants"
)

type Fields map[string]interface{}

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	CRITICAL
)

func (lv LogLevel) String() string {
	switch lv {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

type Logger struct {
	level       LogLevel
	out         *log.Logger
	serviceName string
	mu          sync.RWMutex
}

// New builds a leveled logger writing to stdout and, when logDir is set,
// additionally to a size-rotated file under logDir.
func New(logDir, serviceName, level string) (*Logger, error) {
	var writer io.Writer = os.Stdout

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		name := serviceName
		if name == "" {
			name = "app"
		}
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, name+".log"),
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stdout, fileWriter)
	}

	return &Logger{
		level:       parseLevel(level),
		out:         log.New(writer, "", log.LstdFlags),
		serviceName: serviceName,
	}, nil
}

func (l *Logger) ShouldLog(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

// emit is the single write path. calldepth counts stack frames from emit
// up to the caller whose file:line should appear in the output.
func (l *Logger) emit(level LogLevel, ctx context.Context, msg string, fields Fields, calldepth int) {
	l.mu.RLock()
	currentLevel := l.level
	service := l.serviceName
	l.mu.RUnlock()

	if level < currentLevel {
		return
	}

	var b strings.Builder
	b.WriteString("[" + level.String() + "]")
	if service != "" {
		b.WriteString(" [" + service + "]")
	}

	parts := collectFieldParts(ctx, fields)
	if len(parts) > 0 {
		b.WriteString(" [" + strings.Join(parts, " ") + "]")
	}

	file, line := "unknown", 0
	if _, f, ln, ok := runtime.Caller(calldepth); ok {
		file, line = filepath.Base(f), ln
	}

	l.out.Output(0, fmt.Sprintf("%s %s:%d %s", b.String(), file, line, msg))
}

func collectFieldParts(ctx context.Context, fields Fields) []string {
	var parts []string

	if ctx != nil {
		if traceID, ok := ctx.Value(constants.TraceIDKey).(string); ok && traceID != "" {
			parts = append(parts, "trace_id="+traceID)
		}
	}

	if len(fields) == 0 {
		return parts
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return parts
}

func (l *Logger) log(level LogLevel, msg string) {
	l.emit(level, nil, msg, nil, 3)
}

func (l *Logger) Debug(msg string)    { l.log(DEBUG, msg) }
func (l *Logger) Info(msg string)     { l.log(INFO, msg) }
func (l *Logger) Warn(msg string)     { l.log(WARNING, msg) }
func (l *Logger) Error(msg string)    { l.log(ERROR, msg) }
func (l *Logger) Critical(msg string) { l.log(CRITICAL, msg) }

func (l *Logger) Debugf(format string, args ...any) {
	l.log(DEBUG, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(INFO, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log(WARNING, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(ERROR, fmt.Sprintf(format, args...))
}

func (l *Logger) Criticalf(format string, args ...any) {
	l.log(CRITICAL, fmt.Sprintf(format, args...))
}

func (l *Logger) Fatal(msg string) {
	l.log(CRITICAL, msg)
	os.Exit(1)
}

func (l *Logger) Fatalf(format string, args ...any) {
	l.log(CRITICAL, fmt.Sprintf(format, args...))
	os.Exit(1)
}

func (l *Logger) WithFields(ctx context.Context, fields Fields) *Entry {
	return &Entry{
		logger: l,
		ctx:    ctx,
		fields: fields,
	}
}

type Entry struct {
	logger *Logger
	ctx    context.Context
	fields Fields
}

func (e *Entry) Debug(msg string)    { e.logger.emit(DEBUG, e.ctx, msg, e.fields, 2) }
func (e *Entry) Info(msg string)     { e.logger.emit(INFO, e.ctx, msg, e.fields, 2) }
func (e *Entry) Warn(msg string)     { e.logger.emit(WARNING, e.ctx, msg, e.fields, 2) }
func (e *Entry) Error(msg string)    { e.logger.emit(ERROR, e.ctx, msg, e.fields, 2) }
func (e *Entry) Critical(msg string) { e.logger.emit(CRITICAL, e.ctx, msg, e.fields, 2) }

func (e *Entry) Debugf(format string, args ...any) {
	e.logger.emit(DEBUG, e.ctx, fmt.Sprintf(format, args...), e.fields, 2)
}

func (e *Entry) Infof(format string, args ...any) {
	e.logger.emit(INFO, e.ctx, fmt.Sprintf(format, args...), e.fields, 2)
}

func (e *Entry) Warnf(format string, args ...any) {
	e.logger.emit(WARNING, e.ctx, fmt.Sprintf(format, args...), e.fields, 2)
}

func (e *Entry) Errorf(format string, args ...any) {
	e.logger.emit(ERROR, e.ctx, fmt.Sprintf(format, args...), e.fields, 2)
}

func (e *Entry) Criticalf(format string, args ...any) {
	e.logger.emit(CRITICAL, e.ctx, fmt.Sprintf(format, args...), e.fields, 2)
}

func parseLevel(value string) LogLevel {
	switch strings.TrimSpace(strings.ToUpper(value)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	case "CRITICAL":
		return CRITICAL
	default:
		return INFO
	}
}
