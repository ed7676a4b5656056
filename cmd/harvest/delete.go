package main

import (
	"fmt"

	"github.com/fletchka/harvest"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Items.DeleteItemsByRun(deps.Ctx, c.RunID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted items for run %s\n", c.RunID)
	return nil
}
