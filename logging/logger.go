package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/staffdesk/config"
	"github.com/grovetools/staffdesk/state"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()

	// Load the "logging" extension section from staffdesk.yml
	var logCfg Config
	if cfg, err := config.LoadDefault(); err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	// Configure Level
	levelStr := "info"
	if os.Getenv("STAFFDESK_LOG_LEVEL") != "" {
		levelStr = os.Getenv("STAFFDESK_LOG_LEVEL")
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Configure Caller Reporting
	if os.Getenv("STAFFDESK_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	// Configure Formatter
	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	// Configure Output Sinks
	var writers []io.Writer

	if file := openLogFile(component, logCfg); file != nil {
		writers = append(writers, file)
	}

	// Mirror to stderr only when asked to: a TUI may own the terminal.
	if logCfg.Stderr || os.Getenv("STAFFDESK_LOG_STDERR") == "true" {
		if isatty.IsTerminal(os.Stderr.Fd()) || os.Getenv("STAFFDESK_LOG_STDERR") == "true" {
			writers = append(writers, os.Stderr)
		}
	}

	if len(writers) == 0 {
		logger.SetOutput(io.Discard)
	} else {
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// LogFilePath returns where the given component logs today.
func LogFilePath(component string) (string, error) {
	dir, err := state.Dir()
	if err != nil {
		return "", err
	}
	dateStr := time.Now().Format("2006-01-02")
	return filepath.Join(dir, "logs", fmt.Sprintf("%s-%s.log", component, dateStr)), nil
}

func openLogFile(component string, logCfg Config) io.Writer {
	var logFilePath string
	if logCfg.File.Enabled && logCfg.File.Path != "" {
		logFilePath = expandPath(logCfg.File.Path)
	} else {
		path, err := LogFilePath(component)
		if err != nil {
			return nil
		}
		logFilePath = path
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		if logCfg.File.Enabled {
			logrus.Warnf("Failed to create log directory %s: %v", filepath.Dir(logFilePath), err)
		}
		return nil
	}

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		if logCfg.File.Enabled {
			logrus.Warnf("Failed to open log file %s: %v", logFilePath, err)
		}
		return nil
	}
	return file
}

func expandPath(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Reset clears the logger cache. Tests use it to rebuild loggers after
// pointing STAFFDESK_HOME at a scratch directory.
func Reset() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggers = make(map[string]*logrus.Entry)
}
