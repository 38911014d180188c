/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/careerhub/frontdesk/internal/timeline"
	"github.com/careerhub/frontdesk/types"
)

const dateLayout = "2006-01-02 15:04"

// table renders rows into one buffered write so concurrent printers do not
// interleave.
func table(out io.Writer, header string, rows func(w io.Writer)) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := out.Write(buf.Bytes())
	return err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func printJobs(out io.Writer, jobs []types.Job) error {
	if err := table(out, "ID\tTITLE\tLOCATION\tTYPE\tPOSTED\tACTIVE", func(w io.Writer) {
		for _, job := range jobs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				job.ID, job.Title, orDash(job.Location), orDash(job.JobType), formatDate(job.PostedAt), yesNo(job.IsActive))
		}
	}); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d job(s)\n", len(jobs))
	return err
}

// printTimeline lists the visible stages; the frontier is marked with "*".
func printTimeline(out io.Writer, tl timeline.Timeline) error {
	if tl.Empty {
		_, err := fmt.Fprintln(out, "no status history")
		return err
	}
	return table(out, "\tSTAGE\tDATE\tREMARKS", func(w io.Writer) {
		for _, entry := range tl.Entries {
			marker := ""
			if entry.Stage == tl.Frontier {
				marker = "*"
			}
			date, remarks := "-", "-"
			if entry.Record != nil {
				date = formatDate(entry.Record.CreatedAt)
				remarks = orDash(entry.Record.Remarks)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, entry.Meta.Label, date, remarks)
		}
	})
}

func printApplications(out io.Writer, apps []types.Application) error {
	return table(out, "ID\tJOB\tCANDIDATE\tSTAGE", func(w io.Writer) {
		for _, app := range apps {
			job := app.JobID
			if app.Job != nil && app.Job.Title != "" {
				job = app.Job.Title
			}
			stage := "-"
			if current, ok := timeline.Current(app.Status); ok {
				if meta, ok := current.Meta(); ok {
					stage = meta.Label
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", app.ID, job, orDash(app.CandidateName), stage)
		}
	})
}
