package qcolor

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "qcolor",
	ReportTimestamp: true,
})

// SetLogger replaces the package logger. Not safe to call while a solve is running.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func Logger() *log.Logger {
	return logger
}
