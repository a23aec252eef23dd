package log

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelFatal:
		return "fatal"
	default:
		return fmt.Sprintf("level(%d)", int32(l))
	}
}

func (l Level) tag() string { return "[" + strings.ToUpper(l.String()) + "]" }

var level atomic.Int32

func init() { level.Store(int32(LevelInfo)) }

// ParseLevel accepts debug, info, warn and fatal in any case. An empty string
// is info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "fatal":
		return LevelFatal, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func SetLevel(l Level) { level.Store(int32(l)) }

func GetLevel() Level { return Level(level.Load()) }

// SetOutput redirects all messages, e.g. away from a terminal in raw mode.
func SetOutput(w io.Writer) { log.SetOutput(w) }

func emit(l Level, v []any) {
	if l < GetLevel() {
		return
	}
	args := make([]any, 0, len(v)+1)
	args = append(args, l.tag())
	args = append(args, v...)
	log.Println(args...)
}

func Debug(v ...any) { emit(LevelDebug, v) }

func Info(v ...any) { emit(LevelInfo, v) }

func Warn(v ...any) { emit(LevelWarn, v) }

// Fatal is always printed; callers decide whether to exit.
func Fatal(v ...any) {
	args := make([]any, 0, len(v)+1)
	args = append(args, LevelFatal.tag())
	args = append(args, v...)
	log.Println(args...)
}
