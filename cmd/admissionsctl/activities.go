package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"admissions-workers/internal/app"
	"admissions-workers/internal/common/errors"
	"admissions-workers/pkg/registry"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	registryPath = registry.DefaultPath
	registryFs   = afero.NewOsFs()
)

func init() {
	activitiesCmd.PersistentFlags().StringVar(&registryPath, "registry", registryPath, "path to the activity registry")
	activitiesCmd.AddCommand(activitiesListCmd, activitiesValidateCmd, activitiesSetCmd)
	rootCmd.AddCommand(activitiesCmd)
}

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Inspect and maintain the activity registry",
}

var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered activities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryFs, registryPath)
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, reg)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TASK TYPE\tCATEGORY\tSTATUS\tTIMEOUT\tRETRIES")
		for _, a := range reg.Activities {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", a.TaskType, a.Category, a.ImplementationStatus, a.Timeout, a.Retries)
		}
		return w.Flush()
	},
}

var activitiesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the registry against the registered workers and error codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryFs, registryPath)
		if err != nil {
			return err
		}
		if err := reg.Validate(app.TaskTypes(), errors.Codes()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
		return nil
	},
}

var activitiesSetCmd = &cobra.Command{
	Use:   "set <id> <field> <value>",
	Short: "Update one field of an activity (status, version, displayName, description, timeout, retries)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryFs, registryPath)
		if err != nil {
			return err
		}
		if err := reg.Update(args[0], args[1], args[2]); err != nil {
			return err
		}
		if err := registry.SaveRegistry(registryFs, registryPath, reg, time.Now()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", args[0], args[1], args[2])
		return nil
	},
}
