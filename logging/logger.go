// Package logging provides pre-configured loggers for vizinhanca components.
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

	// Configure Level
	levelStr := "info"
	if os.Getenv("VIZINHANCA_LOG_LEVEL") != "" {
		levelStr = os.Getenv("VIZINHANCA_LOG_LEVEL")
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("VIZINHANCA_LOG_CALLER") == "true" {
		logger.SetReportCaller(true)
	}

	// Configure Formatter
	if os.Getenv("VIZINHANCA_LOG_FORMAT") == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:     isatty.IsTerminal(os.Stderr.Fd()),
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}

	// Configure Output Sinks
	var writers []io.Writer
	writers = append(writers, os.Stderr)

	// File sink lives under ~/.vizinhanca/logs, one file per component per day
	if home, err := os.UserHomeDir(); err == nil {
		dateStr := time.Now().Format("2006-01-02")
		logFilePath := filepath.Join(home, ".vizinhanca", "logs",
			fmt.Sprintf("%s-%s.log", component, dateStr))
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err == nil {
			file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				writers = append(writers, file)
			}
		}
	}

	logger.SetOutput(io.MultiWriter(writers...))

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}
