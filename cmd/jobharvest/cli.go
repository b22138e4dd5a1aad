package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/tszym/jobharvest"
	"github.com/tszym/jobharvest/harvest"
	"github.com/tszym/jobharvest/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Jobs      jobharvest.JobService
	Harvester *harvest.Harvester
	Logger    *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Add    AddCmd    `cmd:"" help:"Seed job postings by URL"`
	Run    RunCmd    `cmd:"" help:"Extract pending job postings in batches"`
	List   ListCmd   `cmd:"" help:"List jobs and their states"`
	Report ReportCmd `cmd:"" help:"Write a CSV report of processed jobs"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URLs  []string `arg:"" name:"url" help:"Job posting URLs"`
	Title string   `help:"Job title (only valid with a single URL)"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Headless       bool          `default:"true" negatable:"" help:"Run the browser without a visible window"`
	NavTimeout     time.Duration `default:"30s" help:"Hard timeout for page navigation"`
	SettleTimeout  time.Duration `default:"10s" help:"Advisory wait for the page to fully load"`
	Retries        int           `default:"3" help:"Attempt budget per job"`
	RetryDelay     time.Duration `default:"2s" help:"Pause between attempts on the same job"`
	BatchSize      int           `default:"5" help:"Jobs processed concurrently per batch"`
	BatchDelay     time.Duration `default:"3s" help:"Pause between batches"`
	IncludeRetried bool          `help:"Also retry jobs attempted in earlier runs"`
	MinChars       int           `default:"200" help:"Minimum extracted characters to accept"`
	RPS            float64       `default:"1" help:"Page loads per second per domain"`
	Report         string        `help:"Write a CSV audit report to this path"`
	Snapshots      string        `help:"Write screenshots of rejected pages to this directory"`
	Verbose        bool          `short:"v" help:"Log progress to stderr"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	State string `help:"Filter by state (unprocessed, attempted, succeeded, validation_failed, exhausted)"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	Out string `required:"" help:"Output CSV path"`
}
