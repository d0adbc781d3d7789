package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Level = logrus.Level

// ParseLevel acepta debug|info|warn|error (default info).
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Logger es la interfaz que reciben servicios, jobs y middleware.
// Los campos van como map para no acoplar a la librería concreta.
type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string
	Output io.Writer // default os.Stdout
}

type logrusLogger struct {
	entry *logrus.Entry
}

func New(opts Options) Logger {
	l := logrus.New()
	l.SetLevel(opts.Level)
	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	switch opts.Format {
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	entry := logrus.NewEntry(l)
	if app := strings.TrimSpace(opts.App); app != "" {
		entry = entry.WithField("app", app)
	}
	return &logrusLogger{entry: entry}
}

// Nop descarta todo. Útil en tests.
func Nop() Logger {
	return New(Options{Level: logrus.PanicLevel, Output: io.Discard})
}

func (l *logrusLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &logrusLogger{entry: l.entry.WithFields(clean(fields))}
}

func (l *logrusLogger) Debug(msg string, fields map[string]any) {
	l.entry.WithFields(clean(fields)).Debug(msg)
}
func (l *logrusLogger) Info(msg string, fields map[string]any) {
	l.entry.WithFields(clean(fields)).Info(msg)
}
func (l *logrusLogger) Warn(msg string, fields map[string]any) {
	l.entry.WithFields(clean(fields)).Warn(msg)
}
func (l *logrusLogger) Error(msg string, fields map[string]any) {
	l.entry.WithFields(clean(fields)).Error(msg)
}

// clean descarta keys vacías; los errores se pasan como string para el formatter JSON.
func clean(fields map[string]any) logrus.Fields {
	out := logrus.Fields{}
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		out[k] = v
	}
	return out
}
