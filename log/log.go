// Package log provides leveled and structured logging functions.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// JSONFormat log in json format
var JSONFormat bool

// SetLogger set log level and format
func SetLogger(verbosity uint32, jsonFormat, colorFormat bool) {
	logger.SetLevel(logrus.Level(verbosity))
	JSONFormat = jsonFormat
	if jsonFormat {
		logger.Formatter = &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		}
	} else {
		logger.Formatter = &logrus.TextFormatter{
			DisableColors:   !colorFormat,
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		}
	}
}

// SetLogFile set log file path and rotation
func SetLogFile(logFile string, logRotation, logMaxAge uint64) {
	if logFile == "" {
		return
	}
	logDir := filepath.Dir(logFile)
	if logDir != "" {
		err := os.MkdirAll(logDir, os.ModePerm)
		if err != nil {
			Fatalf("create log dir '%v' failed. %v", logDir, err)
		}
	}
	writer, err := rotatelogs.New(
		logFile+".%Y%m%d%H",
		rotatelogs.WithLinkName(logFile),
		rotatelogs.WithRotationTime(time.Duration(logRotation)*time.Hour),
		rotatelogs.WithMaxAge(time.Duration(logMaxAge)*time.Hour),
	)
	if err != nil {
		Fatalf("set log file '%v' failed. %v", logFile, err)
	}
	logger.SetOutput(writer)
}

// WithFields encapsulate logrus.WithFields
func WithFields(ctx ...interface{}) *logrus.Entry {
	length := len(ctx)
	fields := make(logrus.Fields, length/2)
	for k := 0; k+2 <= length; k += 2 {
		key, ok := ctx[k].(string)
		if ok {
			fields[key] = ctx[k+1]
		}
	}
	return logger.WithFields(fields)
}

// Trace trace
func Trace(msg string, ctx ...interface{}) {
	WithFields(ctx...).Trace(msg)
}

// Tracef tracef
func Tracef(format string, args ...interface{}) {
	logger.Tracef(format, args...)
}

// Debug debug
func Debug(msg string, ctx ...interface{}) {
	WithFields(ctx...).Debug(msg)
}

// Debugf debugf
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Info info
func Info(msg string, ctx ...interface{}) {
	WithFields(ctx...).Info(msg)
}

// Infof infof
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warn warn
func Warn(msg string, ctx ...interface{}) {
	WithFields(ctx...).Warn(msg)
}

// Warnf warnf
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error error
func Error(msg string, ctx ...interface{}) {
	WithFields(ctx...).Error(msg)
}

// Errorf errorf
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Fatal fatal
func Fatal(msg string, ctx ...interface{}) {
	WithFields(ctx...).Fatal(msg)
}

// Fatalf fatalf
func Fatalf(format string, args ...interface{}) {
	logger.Fatalf(format, args...)
}

// Println println
func Println(msg ...interface{}) {
	logger.Println(msg...)
}

// Printf printf
func Printf(format string, args ...interface{}) {
	logger.Printf(format, args...)
}

// GetLogFuncOr get log func of warn level or the specified levels
func GetLogFuncOr(cond bool, logFuncIf, logFuncElse func(msg string, ctx ...interface{})) func(msg string, ctx ...interface{}) {
	if cond {
		return logFuncIf
	}
	return logFuncElse
}

// PrintCrashLog print crash log to file and stderr
func PrintCrashLog(r interface{}) {
	fmt.Fprintf(os.Stderr, "panic: %v\n\n%s", r, debug.Stack())
}
