package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Ayesha0000000/local-camera-stream/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the active log file inside the configured log directory.
const FileName = "app.log"

// Fields is a set of structured key/value pairs attached to a log entry.
type Fields = logrus.Fields

// Logger provides leveled logging (info/warning/error) to a rotating file and stdout.
type Logger struct {
	entry  *logrus.Entry
	file   *lumberjack.Logger
	logDir string
}

// NewLogger creates a Logger and ensures the log directory exists.
func NewLogger(config *config.Config) (*Logger, error) {
	if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(config.LogDirectory, FileName),
		LocalTime:  true,
		MaxSize:    50,
		MaxAge:     7,
		MaxBackups: 3,
	}

	base := newBase(io.MultiWriter(os.Stdout, file))
	return &Logger{entry: logrus.NewEntry(base), file: file, logDir: config.LogDirectory}, nil
}

// New builds a Logger that writes only to out. Used by tools and tests.
func New(out io.Writer) *Logger {
	return &Logger{entry: logrus.NewEntry(newBase(out))}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard)
}

func newBase(out io.Writer) *logrus.Logger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return base
}

// WithFields returns a child Logger that attaches fields to every entry.
func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{entry: l.entry.WithFields(fields), file: l.file, logDir: l.logDir}
}

// Debug writes a formatted debug-level log entry.
func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// Path returns the active log file path, or "" when the logger has no file.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Filename
}

// CleanLogs starts a fresh log file; the previous one is kept as a rotated backup.
func (l *Logger) CleanLogs() error {
	if l.file == nil {
		return nil
	}
	if err := l.file.Rotate(); err != nil {
		l.Error("Error rotating log file: %v", err)
		return err
	}
	l.Info("Log file has been cleared.")
	return nil
}
