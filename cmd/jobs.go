/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/filter"
	"github.com/careerhub/frontdesk/internal/loader"
	"github.com/careerhub/frontdesk/internal/selection"
	"github.com/careerhub/frontdesk/types"
	"github.com/spf13/cobra"
)

var (
	jobsFilter    filter.JobFilter
	jobsDeleteAll bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List, browse and delete job postings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs matching the filters",
	Long: `Lists jobs. Field filters are sent to the portal; --range and --status
narrow the fetched set locally.

	frontdesk jobs list --title golang --city Lahore --range 1w --status active
`,
	Args: cobra.NoArgs,
	RunE: runJobsList,
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete [ID...]",
	Short: "Delete jobs one by one, stopping at the first failure",
	Long: `Deletes the given jobs. With --all, selects every job of the filtered
list instead; ids given alongside --all are left out.

	frontdesk jobs delete 665e0a... 665e0b...
	frontdesk jobs delete --all --status inactive 665e0c...
`,
	RunE: runJobsDelete,
}

var jobsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Edit filters interactively, one field=value per line",
	Long: `Reads filter edits from stdin and prints the matching jobs after each.
Field edits re-query the portal; range and status edits reuse the fetched
set. A newer query supersedes any that is still running.

	title=golang
	range=1m
	reset
	quit
`,
	Args: cobra.NoArgs,
	RunE: runJobsBrowse,
}

func init() {
	f := jobsListCmd.Flags()
	f.StringVar(&jobsFilter.Title, "title", "", "title contains")
	f.StringVar(&jobsFilter.Location, "location", "", "location contains")
	f.StringVar(&jobsFilter.Gender, "gender", "", "gender")
	f.StringVar(&jobsFilter.Experience, "experience", "", "experience")
	f.StringVar(&jobsFilter.Qualification, "qualification", "", "qualification")
	f.StringVar(&jobsFilter.JobType, "job-type", "", "job type")
	f.StringVar(&jobsFilter.CareerLevel, "career-level", "", "career level")
	f.StringVar(&jobsFilter.Industry, "industry", "", "industry")
	f.StringVar(&jobsFilter.City, "city", "", "city")
	f.StringVar(&jobsFilter.Specialisms, "specialisms", "", "specialisms")
	f.StringVar(&jobsFilter.SortBy, "sort-by", "postedAt", "sort field")
	f.StringVar(&jobsFilter.SortOrder, "sort-order", "desc", "asc or desc")
	f.StringVar(&jobsFilter.Range, "range", filter.RangeAll, "posted within: 5min, 1w, 1m, 3m, 6m, all")
	f.StringVar(&jobsFilter.Status, "status", filter.StatusAll, "active, inactive or all")

	jobsBrowseCmd.Flags().AddFlagSet(f)
	jobsDeleteCmd.Flags().AddFlagSet(f)
	jobsDeleteCmd.Flags().BoolVar(&jobsDeleteAll, "all", false, "select every job matching the filters")

	jobsCmd.AddCommand(jobsListCmd, jobsDeleteCmd, jobsBrowseCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	p := newPortal()
	f := jobsFilter
	if !filter.ValidRange(f.Range) {
		p.log.Warn("unknown range token, showing every date", "range", f.Range)
	}
	jobs, err := p.svc.Jobs.List(cmd.Context(), f)
	if err != nil {
		return err
	}
	return printJobs(cmd.OutOrStdout(), f.Refine(jobs, time.Now()))
}

func runJobsDelete(cmd *cobra.Command, args []string) error {
	p := newPortal()
	ctx := cmd.Context()
	role, err := p.role(ctx)
	if err != nil {
		return err
	}
	if !role.CanManageJobs() {
		return apperror.New(apperror.KindAuth, fmt.Sprintf("role %s cannot delete jobs", role), nil)
	}
	if !jobsDeleteAll && len(args) == 0 {
		return apperror.New(apperror.KindValidation, "no jobs selected: pass ids or --all", nil)
	}

	selected, err := jobsSelection(ctx, p, args)
	if err != nil {
		return err
	}
	if selected.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no jobs selected")
		return nil
	}

	result := selection.BulkDelete(ctx, selected.IDs(), func(ctx context.Context, id string) error {
		return p.svc.Jobs.Delete(ctx, role, id)
	})

	out := cmd.OutOrStdout()
	for _, id := range result.Deleted {
		fmt.Fprintf(out, "deleted %s\n", id)
	}
	if result.Err != nil {
		return fmt.Errorf("delete %s: %s", result.Failed, apperror.Message(result.Err))
	}
	return nil
}

// jobsSelection builds the delete selection. With --all it selects every
// visible row of the filtered list and toggles args back out.
func jobsSelection(ctx context.Context, p *portal, args []string) (*selection.Set, error) {
	if !jobsDeleteAll {
		return selection.New(args...), nil
	}
	f := jobsFilter
	jobs, err := p.svc.Jobs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	visible := f.Refine(jobs, time.Now())
	ids := make([]string, 0, len(visible))
	for _, job := range visible {
		ids = append(ids, job.ID)
	}

	selected := &selection.Set{}
	selected.SelectAll(ids)
	for _, id := range args {
		if selected.Has(id) {
			selected.Toggle(id)
		}
	}
	return selected, nil
}

func runJobsBrowse(cmd *cobra.Command, _ []string) error {
	p := newPortal()
	ctx := cmd.Context()
	out := &syncWriter{w: cmd.OutOrStdout()}

	var (
		jobs loader.Loader[[]types.Job]
		wg   sync.WaitGroup

		// mu guards current and pending and orders table output against
		// filter edits.
		mu      sync.Mutex
		current = jobsFilter
		pending int
	)

	refetch := func(f filter.JobFilter) {
		mu.Lock()
		pending++
		mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			fetched, err := jobs.Load(ctx, func(ctx context.Context) ([]types.Job, error) {
				return p.svc.Jobs.List(ctx, f)
			})

			mu.Lock()
			defer mu.Unlock()
			pending--
			switch {
			case errors.Is(err, loader.ErrStale):
			case err != nil:
				fmt.Fprintf(out, "error: %s\n", apperror.Message(err))
			case filter.NeedsRefetch(f, current):
				// A newer query is on its way and prints its own result.
			default:
				_ = printJobs(out, current.Refine(fetched, time.Now()))
			}
		}()
	}

	refetch(current)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		mu.Lock()
		next := current
		mu.Unlock()

		if line == "reset" {
			next.Reset()
		} else {
			name, value, ok := strings.Cut(line, "=")
			if !ok {
				fmt.Fprintf(out, "expected field=value, got %q\n", line)
				continue
			}
			if err := next.Set(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
				fmt.Fprintf(out, "%v\n", err)
				continue
			}
		}

		mu.Lock()
		needsFetch := filter.NeedsRefetch(current, next)
		current = next
		if !needsFetch {
			// While a query runs, its completion prints with this filter.
			if pending == 0 {
				_ = printJobs(out, current.Refine(jobs.Snapshot().Value, time.Now()))
			}
		}
		mu.Unlock()

		if needsFetch {
			refetch(next)
		}
	}
	if err := scanner.Err(); err != nil {
		jobs.Cancel()
		wg.Wait()
		return err
	}

	wg.Wait()
	snap := jobs.Snapshot()
	if snap.Err != nil {
		return snap.Err
	}
	fmt.Fprintln(out, "final:")
	return printJobs(out, current.Refine(snap.Value, time.Now()))
}
