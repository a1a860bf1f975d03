package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/app"
	"admissions-workers/internal/models"

	"github.com/spf13/cobra"
)

var (
	searchTerm   string
	courseFilter string
	assumeYes    bool
	setFields    []string
)

func init() {
	for _, c := range []*cobra.Command{listCmd, exportCmd} {
		c.Flags().StringVar(&searchTerm, "search", "", "match name or email, case-insensitive")
		c.Flags().StringVar(&courseFilter, "course", models.CategoryAll, "selected course, or All")
	}
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "confirm the deletion")
	editCmd.Flags().StringArrayVar(&setFields, "set", nil, "field=value to change (name, email, contactNumber, selectedCourse)")

	rootCmd.AddCommand(listCmd, showCmd, editCmd, deleteCmd, exportCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications matching a search term and course",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResources(cmd, func(ctx context.Context, res *app.Resources) error {
			listing, err := res.Service.Registry.List(ctx, admissions.Filter{SearchTerm: searchTerm, Course: courseFilter})
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(cmd, listing)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCONTACT\tCOURSE\tSUBMITTED")
			for _, a := range listing.Applications {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Email, a.ContactNumber, a.SelectedCourse, a.SubmittedAt)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Showing %d of %d applications\n", listing.Shown, listing.Total)
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withResources(cmd, func(ctx context.Context, res *app.Resources) error {
			rec, err := res.Service.Registry.Get(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id> --set field=value...",
	Short: "Change editable fields of an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		changes, err := parseChanges(setFields)
		if err != nil {
			return err
		}
		return withResources(cmd, func(ctx context.Context, res *app.Resources) error {
			registry := res.Service.Registry
			if _, err := registry.BeginEdit(ctx, id); err != nil {
				return err
			}
			rec, err := registry.SaveEdit(ctx, id, changes)
			if err != nil {
				registry.CancelEdit()
				return err
			}
			if outputJSON {
				return printJSON(cmd, rec)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated application %d\n", rec.ID)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withResources(cmd, func(ctx context.Context, res *app.Resources) error {
			deleted, err := res.Service.Registry.Delete(ctx, id, assumeYes)
			if err != nil {
				if !assumeYes {
					return fmt.Errorf("%w (pass --yes to delete application %d)", err, id)
				}
				return err
			}
			if deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted application %d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No application %d, nothing deleted\n", id)
			}
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered applications as CSV to the download sink",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResources(cmd, func(ctx context.Context, res *app.Resources) error {
			export, err := res.Service.Registry.Export(ctx, admissions.Filter{SearchTerm: searchTerm, Course: courseFilter})
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(cmd, export)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d applications to %s\n", export.Rows, export.File.Location)
			return nil
		})
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "APP"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid application id %q", s)
	}
	return id, nil
}

func parseChanges(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("nothing to change, pass --set field=value")
	}
	changes := make(map[string]string, len(pairs))
	for _, p := range pairs {
		field, value, ok := strings.Cut(p, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --set %q, want field=value", p)
		}
		changes[field] = value
	}
	return changes, nil
}
