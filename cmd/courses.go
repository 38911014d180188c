/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/course"
	"github.com/careerhub/frontdesk/types"
	"github.com/spf13/cobra"
)

var playProgress []float64

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Browse courses and track lesson progress",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := newPortal()
		courses, err := p.svc.Courses.List(cmd.Context())
		if err != nil {
			return err
		}
		return table(cmd.OutOrStdout(), "ID\tTITLE\tLEVEL\tPRICE\tLESSONS", func(w io.Writer) {
			for _, c := range courses {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", c.ID, c.Title, orDash(c.Level), orDash(c.Price), len(c.Lessons()))
			}
		})
	},
}

var coursesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a course curriculum with your lesson progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoursesShow,
}

var coursesEnrollCmd = &cobra.Command{
	Use:   "enroll ID",
	Short: "Enroll in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newPortal().svc.Courses.Enroll(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "enrolled in %s\n", args[0])
		return nil
	},
}

var coursesCompleteLessonCmd = &cobra.Command{
	Use:   "complete-lesson ID TITLE",
	Short: "Mark a lesson as watched",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := types.LessonCompleteRequest{LessonTitle: args[1]}
		if err := newPortal().svc.Courses.CompleteLesson(cmd.Context(), args[0], req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "completed %q\n", args[1])
		return nil
	},
}

var coursesPlayCmd = &cobra.Command{
	Use:   "play ID TITLE",
	Short: "Replay player progress events for a lesson",
	Long: `Feeds played fractions to the lesson watcher the way a video player
would. The lesson is marked complete the first time playback reaches 98%.

	frontdesk courses play 66a0... "Welcome" --at 0.25,0.6,0.99
`,
	Args: cobra.ExactArgs(2),
	RunE: runCoursesPlay,
}

var coursesCompleteCmd = &cobra.Command{
	Use:   "complete ID",
	Short: "Mark a course complete once every lesson is done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newPortal().svc.Courses.CompleteCourse(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "course %s completed\n", args[0])
		return nil
	},
}

func init() {
	coursesPlayCmd.Flags().Float64SliceVar(&playProgress, "at", nil, "played fractions between 0 and 1, in order")

	coursesCmd.AddCommand(coursesListCmd, coursesShowCmd, coursesEnrollCmd, coursesCompleteLessonCmd, coursesPlayCmd, coursesCompleteCmd)
	rootCmd.AddCommand(coursesCmd)
}

func runCoursesShow(cmd *cobra.Command, args []string) error {
	p := newPortal()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	c, err := p.svc.Courses.Get(ctx, args[0])
	if err != nil {
		return err
	}
	enrollment, err := p.svc.Courses.Enrollment(ctx, args[0])
	enrolled := err == nil
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	fmt.Fprintf(out, "%s (%s, %s)\n", c.Title, orDash(c.Level), orDash(c.Price))
	if err := table(out, "SECTION\tLESSON\tDURATION\tDONE", func(w io.Writer) {
		for _, section := range c.Curriculum {
			for _, lesson := range section.Lessons {
				done := "-"
				if enrolled {
					done = yesNo(course.IsLessonCompleted(enrollment, lesson.Title))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", section.Title, lesson.Title, orDash(lesson.Duration), done)
			}
		}
	}); err != nil {
		return err
	}

	switch {
	case !enrolled:
		fmt.Fprintln(out, "not enrolled")
	case enrollment.Completed:
		fmt.Fprintln(out, "course completed")
	case course.CanComplete(c, enrollment):
		fmt.Fprintln(out, "every lesson done; run `frontdesk courses complete` to finish")
	default:
		fmt.Fprintf(out, "%d lesson(s) remaining\n", len(course.Remaining(c, enrollment)))
	}
	return nil
}

func runCoursesPlay(cmd *cobra.Command, args []string) error {
	p := newPortal()
	out := cmd.OutOrStdout()
	watcher := p.svc.Courses.LessonWatcher(args[0], args[1])

	for _, played := range playProgress {
		fired, err := watcher.Observe(cmd.Context(), played)
		if err != nil {
			fmt.Fprintf(out, "%.0f%%: could not save progress: %s\n", played*100, apperror.Message(err))
			continue
		}
		if fired {
			fmt.Fprintf(out, "%.0f%%: lesson %q marked complete\n", played*100, args[1])
		}
	}

	if watcher.Close() == course.CloseConfirmRequired {
		fmt.Fprintln(out, course.CloseWarning)
	}
	return nil
}
