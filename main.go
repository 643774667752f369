package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/montrey/jump/platform"
)

// Version is set at build time.
var Version = "dev"

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "jump",
})

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	weightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// migrationLogger sends goose output to the debug level.
type migrationLogger struct {
	*log.Logger
}

func (l migrationLogger) Printf(format string, v ...interface{}) {
	l.Debugf(strings.TrimSpace(format), v...)
}

func main() {
	if err := newRootCmd(platform.Host{}).Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
