package cmd

import (
	"github.com/spf13/cobra"

	"github.com/civiclink/civiclink/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer d.Close()

	opts := app.Options{
		Chat:    d.chat,
		Log:     d.log,
		Stats:   d.stats,
		Catalog: d.catalog,
		Regions: d.regions,
	}
	if d.providerErr != nil {
		logger.Warn("LLM provider not configured, AI features unavailable", "error", d.providerErr)
		opts.Notice = "AI features are off: set an LLM API key (e.g. ANTHROPIC_API_KEY) and restart."
	}
	return app.Run(opts)
}
