// Package logger is the process-wide structured logger. Until Init runs,
// every helper is a no-op.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habitlit/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	logPath string
)

type Config struct {
	Debug bool
	// ConfigDir is the directory holding the database; logs go to ConfigDir/logs.
	ConfigDir string
}

// Init sets up the global logger on a rotating file. Debug mode lowers the
// level, reports callers and mirrors output to stderr.
func Init(cfg Config) error {
	dir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dir, constants.AppName+".log")

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}
	opts := log.Options{
		ReportTimestamp: true,
		Level:           log.WarnLevel,
		Prefix:          constants.AppName,
	}
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, out)
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}

	Logger = log.NewWithOptions(out, opts)
	logPath = path
	return nil
}

// Path returns the active log file, or "" before Init.
func Path() string {
	if Logger == nil {
		return ""
	}
	return logPath
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
