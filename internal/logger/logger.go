// Package logger provides leveled logging on top of the standard log package.
// Messages below the configured level are dropped; everything else goes to
// stderr either as prefixed text lines or as one JSON object per line.
package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Level represents a logging level.
type Level int

const (
	// DebugLevel logs are voluminous and usually disabled outside development.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs flag conditions worth noticing but not acting on.
	WarnLevel
	// ErrorLevel logs are high-priority failures.
	ErrorLevel
)

var levelNames = map[Level]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
}

// Logger filters messages by level before handing them to a standard logger.
type Logger struct {
	level Level
	json  bool
	out   *log.Logger
}

var defaultLogger *Logger

// ParseLevel maps a level name to its Level, defaulting to InfoLevel for
// unknown names.
func ParseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Init configures the package-level logger. Format "json" emits one JSON
// object per line with its own timestamp; any other format emits prefixed
// text lines with the standard log timestamp.
func Init(level string, format string) {
	jsonMode := strings.ToLower(format) == "json"
	flags := log.LstdFlags | log.Lmicroseconds
	if jsonMode {
		flags = 0
	}
	defaultLogger = &Logger{
		level: ParseLevel(level),
		json:  jsonMode,
		out:   log.New(os.Stderr, "", flags),
	}
}

func emit(calldepth int, name string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if defaultLogger.json {
		b, err := json.Marshal(map[string]string{
			"time":  time.Now().Format(time.RFC3339Nano),
			"level": name,
			"msg":   msg,
		})
		if err == nil {
			_ = defaultLogger.out.Output(calldepth, string(b))
		}
		return
	}
	_ = defaultLogger.out.Output(calldepth, "["+name+"] "+msg)
}

func logAt(lvl Level, format string, args ...interface{}) {
	if defaultLogger == nil || defaultLogger.level > lvl {
		return
	}
	emit(4, levelNames[lvl], format, args...)
}

// Debug logs a message at DebugLevel.
func Debug(format string, args ...interface{}) { logAt(DebugLevel, format, args...) }

// Info logs a message at InfoLevel.
func Info(format string, args ...interface{}) { logAt(InfoLevel, format, args...) }

// Warn logs a message at WarnLevel.
func Warn(format string, args ...interface{}) { logAt(WarnLevel, format, args...) }

// Error logs a message at ErrorLevel.
func Error(format string, args ...interface{}) { logAt(ErrorLevel, format, args...) }

// Fatal logs a message and exits the process.
func Fatal(format string, args ...interface{}) {
	if defaultLogger == nil {
		log.Fatalf("[FATAL] "+format, args...)
	}
	emit(3, "FATAL", format, args...)
	os.Exit(1)
}
