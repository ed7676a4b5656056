package main

import (
	"fmt"

	"github.com/fletchka/harvest"
)

// Run executes the items command.
func (c *ItemsCmd) Run(deps *Dependencies) error {
	items, err := deps.Items.FindItemsByRun(deps.Ctx, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(deps.Stdout, "No items found for this run.")
		return nil
	}

	for _, item := range items {
		fmt.Fprintf(deps.Stdout, "%-18s %s  %s\n", item.ContentType, item.Title, item.SourceURL)
		if c.Full {
			fmt.Fprintln(deps.Stdout, item.Content)
			fmt.Fprintln(deps.Stdout)
		}
	}

	return nil
}
