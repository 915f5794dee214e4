package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// SetupLogger configures the process-wide logger. Unknown levels fall back
// to info.
func SetupLogger(level string) {
	log.SetOutput(os.Stderr)
	log.SetPrefix("cropvoice")

	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unknown log level %q, using info\n", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetReportTimestamp(lvl == log.DebugLevel)
}
