package main

import (
	"fmt"

	"github.com/tszym/jobharvest"
	"github.com/tszym/jobharvest/fs"
)

// Run executes the report command. It re-emits the audit CSV from the
// store, so a report is available even when the run that produced the
// data wasn't started with --report.
func (c *ReportCmd) Run(deps *Dependencies) error {
	jobs, err := deps.Jobs.FindJobs(deps.Ctx, jobharvest.JobFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobharvest.ErrorMessage(err))
		return err
	}

	writer, err := fs.NewReportWriter(c.Out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to create report file: %v\n", err)
		return err
	}
	defer writer.Close()

	var rows int
	for _, j := range jobs {
		status, ok := reportStatus(j.State)
		if !ok {
			continue
		}
		if err := writer.WriteRow(deps.Ctx, jobharvest.ReportRow{
			JobID:  j.ID,
			Title:  j.Title,
			Status: status,
			Error:  j.LastError,
		}); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to write report row: %v\n", err)
			return err
		}
		rows++
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d rows to %s\n", rows, c.Out)
	return nil
}

// reportStatus maps a terminal job state to its report status. Jobs
// still pending extraction have no final status and are skipped.
func reportStatus(state jobharvest.JobState) (jobharvest.ReportStatus, bool) {
	switch state {
	case jobharvest.JobSucceeded:
		return jobharvest.ReportSuccess, true
	case jobharvest.JobValidationFailed:
		return jobharvest.ReportValidationFailed, true
	case jobharvest.JobExhausted:
		return jobharvest.ReportFailed, true
	}
	return "", false
}
