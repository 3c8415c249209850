package logging

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus entry to Logger. Key–value args become
// logrus fields; a dangling key is logged under "!BADKEY" as slog does.
type LogrusLogger struct {
	e *logrus.Entry
}

func NewLogrusLogger(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{e: logrus.NewEntry(l)}
}

// ParseLevel maps a textual level onto logrus, defaulting to info.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func fields(args []any) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			f["!BADKEY"] = args[i]
			break
		}
		f[fmt.Sprint(args[i])] = args[i+1]
	}
	return f
}

func (l *LogrusLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.e.WithContext(ctx).WithFields(fields(args)).Debug(msg)
}

func (l *LogrusLogger) Info(ctx context.Context, msg string, args ...any) {
	l.e.WithContext(ctx).WithFields(fields(args)).Info(msg)
}

func (l *LogrusLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.e.WithContext(ctx).WithFields(fields(args)).Warn(msg)
}

func (l *LogrusLogger) Error(ctx context.Context, msg string, args ...any) {
	l.e.WithContext(ctx).WithFields(fields(args)).Error(msg)
}

func (l *LogrusLogger) With(args ...any) Logger {
	return &LogrusLogger{e: l.e.WithFields(fields(args))}
}
