/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/timeline"
	"github.com/careerhub/frontdesk/types"
	"github.com/spf13/cobra"
)

var (
	timelineJobID  string
	applyResumeURL string
	applyCover     string
	statusRemarks  string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline [APPLICATION_ID]",
	Short: "Show the status timeline of an application",
	Long: `Shows the stages an application went through, the current one marked
with "*". Without an id, lists your applications, or with --job the
applicants of a job.

	frontdesk timeline 665f1c...
	frontdesk timeline --job 665e0a...
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTimeline,
}

var applyCmd = &cobra.Command{
	Use:   "apply JOB_ID",
	Short: "Apply to a job as a candidate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPortal()
		req := types.ApplyRequest{ResumeURL: applyResumeURL, CoverLetter: applyCover}
		if err := p.svc.Applications.Apply(cmd.Context(), args[0], req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "applied to %s\n", args[0])
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status APPLICATION_ID STAGE",
	Short: "Move an applicant to shortlisted, interviewed, offered or rejected",
	Args:  cobra.ExactArgs(2),
	RunE:  runStatus,
}

func init() {
	timelineCmd.Flags().StringVar(&timelineJobID, "job", "", "list the applicants of this job")
	applyCmd.Flags().StringVar(&applyResumeURL, "resume", "", "URL of the resume to attach")
	applyCmd.Flags().StringVar(&applyCover, "cover-letter", "", "optional cover letter")
	statusCmd.Flags().StringVar(&statusRemarks, "remarks", "", "note stored with the status change")

	rootCmd.AddCommand(timelineCmd, applyCmd, statusCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	p := newPortal()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 0 && timelineJobID == "" {
		apps, err := p.svc.Applications.ListMine(ctx)
		if err != nil {
			return err
		}
		return printApplications(out, apps)
	}

	role, err := p.role(ctx)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		apps, err := p.svc.Applications.ListApplicants(ctx, role, timelineJobID)
		if err != nil {
			return err
		}
		return printApplications(out, apps)
	}

	app, err := p.svc.Applications.Get(ctx, role, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "application %s", app.ID)
	if app.CandidateName != "" {
		fmt.Fprintf(out, " by %s", app.CandidateName)
	}
	fmt.Fprintln(out)
	return printTimeline(out, timeline.Reduce(app.Status))
}

func runStatus(cmd *cobra.Command, args []string) error {
	stage, ok := types.ParseStage(args[1])
	if !ok {
		return apperror.New(apperror.KindValidation, fmt.Sprintf("unknown stage %q", args[1]), nil)
	}

	p := newPortal()
	ctx := cmd.Context()
	role, err := p.role(ctx)
	if err != nil {
		return err
	}
	if !role.CanManageJobs() {
		return apperror.New(apperror.KindAuth, fmt.Sprintf("role %s cannot change application status", role), nil)
	}

	req := types.StatusChangeRequest{ApplicationID: args[0], Stage: stage, Remarks: statusRemarks}
	if err := p.svc.Applications.ChangeStatus(ctx, role, req); err != nil {
		return err
	}
	app, err := p.svc.Applications.Get(ctx, role, args[0])
	if err != nil {
		return err
	}
	return printTimeline(cmd.OutOrStdout(), timeline.Reduce(app.Status))
}
