package main

import (
	"fmt"

	"github.com/tszym/jobharvest"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	if c.Title != "" && len(c.URLs) > 1 {
		err := jobharvest.Errorf(jobharvest.EINVALID, "--title only applies to a single URL")
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobharvest.ErrorMessage(err))
		return err
	}

	for _, url := range c.URLs {
		job := &jobharvest.Job{
			URL:   url,
			Title: c.Title,
		}

		if err := deps.Jobs.CreateJob(deps.Ctx, job); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", jobharvest.ErrorMessage(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "Added job %s (%s)\n", job.ID, job.URL)
	}

	return nil
}
