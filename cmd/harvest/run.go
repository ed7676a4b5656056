package main

import (
	"fmt"

	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/fs"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg, err := LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	teamID := cfg.TeamID
	if c.Team != "" {
		teamID = c.Team
	}
	output := cfg.Output
	if c.Output != "" {
		output = c.Output
	}
	if output == "" {
		output = "export.json"
	}

	if c.Concurrency > 0 {
		deps.Scraper.Concurrency = c.Concurrency
	}

	fmt.Fprintf(deps.Stdout, "Scraping %d sources for team %s\n", len(cfg.Sources), teamID)

	progress := func(current, total int, url string) {
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", current, total, url)
	}

	result, err := deps.Scraper.Run(deps.Ctx, teamID, cfg.Sources, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	for _, res := range result.Sources {
		switch {
		case res.Err != nil:
			fmt.Fprintf(deps.Stderr, "  failed %s: %s\n", res.Source.URL, harvest.ErrorMessage(res.Err))
		case res.Degraded:
			fmt.Fprintf(deps.Stdout, "  %s: %d preview items (listing needs a browser)\n", res.Source.URL, len(res.Items))
		default:
			fmt.Fprintf(deps.Stdout, "  %s: %d items, %d skipped, %d failed\n",
				res.Source.URL, len(res.Items), res.Skipped, res.Failed)
		}
	}

	exporter := fs.NewExporter(output)
	if err := exporter.Export(deps.Ctx, result.Export); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d items to %s (run %s)\n", len(result.Export.Items), output, result.RunID)
	return nil
}
