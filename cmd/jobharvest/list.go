package main

import (
	"fmt"

	"github.com/tszym/jobharvest"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := jobharvest.JobFilter{}
	if c.State != "" {
		state := jobharvest.JobState(c.State)
		filter.State = &state
	}

	jobs, err := deps.Jobs.FindJobs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobharvest.ErrorMessage(err))
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs found. Use 'jobharvest add' to seed postings.")
		return nil
	}

	for _, j := range jobs {
		fmt.Fprintf(deps.Stdout, "%s  %-17s  attempts=%d  %s\n", j.ID, j.State, j.AttemptCount, j.URL)
	}

	return nil
}
