package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/app"
	"admissions-workers/internal/models"

	"github.com/spf13/cobra"
)

var (
	courseSearch   string
	courseCategory string

	form        admissions.ApplicationForm
	photoName   string
	documentsNm string
)

func init() {
	coursesCmd.Flags().StringVar(&courseSearch, "search", "", "match course name or description")
	coursesCmd.Flags().StringVar(&courseCategory, "category", models.CategoryAll, "course category, or All")

	f := submitCmd.Flags()
	f.StringVar(&form.Name, "name", "", "applicant name")
	f.StringVar(&form.DateOfBirth, "dob", "", "date of birth (YYYY-MM-DD)")
	f.StringVar(&form.Email, "email", "", "email address")
	f.StringVar(&form.ContactNumber, "phone", "", "10-digit contact number")
	f.StringVar(&form.SelectedCourse, "course", "", "course name")
	f.StringVar(&photoName, "photo", "", "photo file name")
	f.StringVar(&documentsNm, "documents", "", "documents file name")

	rootCmd.AddCommand(coursesCmd, contactsCmd, submitCmd)
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Search the course catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResources(cmd, func(ctx context.Context, res *app.Resources) error {
			courses, err := res.Searcher.Search(ctx, courseSearch, courseCategory)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(cmd, courses)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tDURATION\tFEES")
			for _, c := range courses {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Category, c.Duration, c.Fees)
			}
			return w.Flush()
		})
	},
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Print stored contact messages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResources(cmd, func(ctx context.Context, res *app.Resources) error {
			msgs, err := res.Service.Repository.ContactMessages(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(cmd, msgs)
			}
			for _, m := range msgs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s <%s>\n  %s\n", m.SubmittedAt, m.Name, m.Email, m.Message)
			}
			return nil
		})
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an application on behalf of an applicant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := form
		if photoName != "" {
			in.Photo = &admissions.FileRef{Name: photoName}
		}
		if documentsNm != "" {
			in.Documents = &admissions.FileRef{Name: documentsNm}
		}
		return withResources(cmd, func(ctx context.Context, res *app.Resources) error {
			sub, err := res.Service.Intake.Submit(ctx, in)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(cmd, sub)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted APP%d, receipt at %s\n", sub.Record.ID, sub.Receipt.Location)
			return nil
		})
	},
}
