// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/hpmalabs/hpma/internal/contract"
	"golang.org/x/term"
)

// logOut receives the banner and save notices so that stdout only carries results.
var logOut io.Writer = os.Stderr

// LogScoringHeader prints a concise, 2-line header before a scoring batch.
func LogScoringHeader(cfg *contract.Config, bankVersion string) {
	writeScoringHeader(logOut, cfg, bankVersion)
}

func writeScoringHeader(w io.Writer, cfg *contract.Config, bankVersion string) {
	content := "embedded"
	if cfg.ContentDir != "" {
		content = cfg.ContentDir
	}

	// Line 1: What is scored against which bank
	_, _ = fmt.Fprintf(w, "🧠 Scoring %d response file(s) (bank: %s, content: %s)\n", len(cfg.InputPaths), bankVersion, content)

	// Line 2: How the batch runs
	_, _ = fmt.Fprintf(w, "⚙️  Workers: %d | Fault on invalid: %t | Cache: %s | History: %s\n",
		cfg.Workers, cfg.FaultOnInvalid, cfg.CacheBackend, cfg.HistoryBackend)
}

// getMaxTableTextWidth calculates how wide a free-text column may be in table output,
// given the space taken by the fixed columns.
func getMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators, and padding
	available := termWidth - fixedWidth - 20
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
