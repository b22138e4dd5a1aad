package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tszym/jobharvest"
	main "github.com/tszym/jobharvest/cmd/jobharvest"
	"github.com/tszym/jobharvest/harvest"
	"github.com/tszym/jobharvest/mock"
)

func TestRunCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints summary for an empty queue", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobsFn: func(_ context.Context, _ jobharvest.JobFilter) ([]*jobharvest.Job, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Jobs:   jobs,
			Harvester: &harvest.Harvester{
				Jobs:   jobs,
				Config: jobharvest.DefaultRunConfig(),
			},
		}

		cmd := &main.RunCmd{}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Processed 0 jobs")
	})

	t.Run("reports early halt on fatal upstream errors", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobsFn: func(_ context.Context, _ jobharvest.JobFilter) ([]*jobharvest.Job, error) {
				return []*jobharvest.Job{
					{ID: "job-1", URL: "https://example.com/careers/1"},
				}, nil
			},
			UpdateJobFn: func(_ context.Context, id string, _ jobharvest.JobUpdate) (*jobharvest.Job, error) {
				return &jobharvest.Job{ID: id}, nil
			},
		}

		loader := &mock.Loader{
			LoadFn: func(_ context.Context, _ string) (jobharvest.Page, error) {
				return nil, jobharvest.Errorf(jobharvest.EQUOTA, "quota exceeded for today")
			},
		}

		config := jobharvest.DefaultRunConfig()
		config.MaxRetries = 1
		config.RetryDelay = 0
		config.BatchDelay = 0

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Jobs:   jobs,
			Harvester: &harvest.Harvester{
				Jobs:   jobs,
				Loader: loader,
				Config: config,
			},
		}

		cmd := &main.RunCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Run halted early")
		assert.Contains(t, stderr.String(), "quota exceeded")
	})
}
