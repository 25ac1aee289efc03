package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/alarmnote/internal/constants"
)

// Logger is the process-wide logger. While it is nil every helper below is a no-op.
var Logger *log.Logger

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// FileName overrides the log file name inside <ConfigDir>/logs
	FileName string
}

// Init points the global logger at a rotating file under <ConfigDir>/logs.
// Debug mode lowers the level and mirrors output to stderr.
func Init(cfg Config) error {
	dir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	name := cfg.FileName
	if name == "" {
		name = constants.AppName + ".log"
	}
	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    5, // MB
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}

	if cfg.Debug {
		Logger = newLogger(io.MultiWriter(os.Stderr, rotating), log.DebugLevel, true)
	} else {
		Logger = newLogger(rotating, log.WarnLevel, false)
	}
	return nil
}

// SetOutput replaces the global logger with one writing to w at level.
func SetOutput(w io.Writer, level log.Level) {
	Logger = log.NewWithOptions(w, log.Options{Level: level, Prefix: constants.AppName})
}

func newLogger(w io.Writer, level log.Level, caller bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          constants.AppName,
		ReportTimestamp: true,
		ReportCaller:    caller,
		// The helpers add a frame between the caller and charmbracelet/log.
		CallerOffset: 1,
	})
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
