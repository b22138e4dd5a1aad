package main

import (
	"fmt"
	"time"

	"github.com/tszym/jobharvest"
)

// summaryPrecision rounds elapsed time in the printed summary.
const summaryPrecision = 100 * time.Millisecond

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	summary, err := deps.Harvester.Run(deps.Ctx)
	if summary != nil {
		fmt.Fprintf(deps.Stdout, "Processed %d jobs in %s: %d succeeded, %d failed\n",
			summary.Processed, summary.Elapsed.Round(summaryPrecision), summary.Succeeded, summary.Failed)
		if summary.HaltedEarly {
			fmt.Fprintf(deps.Stderr, "Run halted early: %s\n", summary.HaltReason)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobharvest.ErrorMessage(err))
		return err
	}
	return nil
}
