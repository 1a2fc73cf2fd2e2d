package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// logSince logs msg at info level with the time elapsed since start,
// rounded to the millisecond, ahead of keyvals.
func logSince(l *log.Logger, start time.Time, msg string, keyvals ...any) {
	kv := make([]any, 0, len(keyvals)+2)
	kv = append(kv, "elapsed", time.Since(start).Round(time.Millisecond))
	l.Info(msg, append(kv, keyvals...)...)
}
