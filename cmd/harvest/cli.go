package main

import (
	"context"
	"io"

	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/scrape"
	"github.com/fletchka/harvest/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Items   harvest.ItemService
	Scraper *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run    RunCmd    `cmd:"" help:"Scrape configured sources and write an export"`
	Items  ItemsCmd  `cmd:"" help:"List stored items for a run"`
	Delete DeleteCmd `cmd:"" help:"Delete all stored items for a run"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Config      string `arg:"" help:"Path to the YAML source configuration"`
	Team        string `short:"t" help:"Team ID override"`
	Output      string `short:"o" help:"Export file path override"`
	Concurrency int    `short:"c" default:"3" help:"Concurrent source limit"`
}

// ItemsCmd is the "items" subcommand.
type ItemsCmd struct {
	RunID string `arg:"" help:"Run ID"`
	Full  bool   `help:"Show full item content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	RunID string `arg:"" help:"Run ID"`
}
