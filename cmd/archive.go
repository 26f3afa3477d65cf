package cmd

import (
	"fmt"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/spf13/cobra"
)

func newArchiveCmd(a *app) *cobra.Command {
	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Batch-cooking records",
	}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Record a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			weight, _ := f.GetInt("weight")
			if weight <= 0 {
				weight = a.store.WeightPerCube()
			}
			count, _ := f.GetInt("count")
			total, _ := f.GetInt("total")
			note, _ := f.GetString("note")
			r := a.store.AddManufacturingRecord(models.ManufacturingRecord{
				Title:       args[0],
				CubeWeight:  weight,
				CubeCount:   count,
				TotalWeight: total,
				Note:        note,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "archived %s (%dg x %d = %dg)\n", r.ID, r.CubeWeight, r.CubeCount, r.TotalWeight)
			return nil
		},
	}
	addCmd.Flags().Int("weight", 0, "grams per cube (default global weight)")
	addCmd.Flags().Int("count", 0, "number of cubes")
	addCmd.Flags().Int("total", 0, "total grams (default weight x count)")
	addCmd.Flags().String("note", "", "free-form note")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List batch records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tCREATED\tTITLE\tCUBE\tCOUNT\tTOTAL")
			for _, r := range a.store.Snapshot().Archive {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%dg\t%d\t%dg\n",
					r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Title, r.CubeWeight, r.CubeCount, r.TotalWeight)
			}
			return tw.Flush()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a batch record with its note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range a.store.Snapshot().Archive {
				if r.ID != args[0] {
					continue
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s\n%dg x %d = %dg\n", r.Title, r.CubeWeight, r.CubeCount, r.TotalWeight)
				if r.Note != "" {
					fmt.Fprintf(out, "\n%s\n", r.Note)
				}
				return nil
			}
			return fmt.Errorf("no archive record %s", args[0])
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a batch record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var patch models.ManufacturingPatch
			if f.Changed("title") {
				v, _ := f.GetString("title")
				patch.Title = &v
			}
			if f.Changed("weight") {
				v, _ := f.GetInt("weight")
				patch.CubeWeight = &v
			}
			if f.Changed("count") {
				v, _ := f.GetInt("count")
				patch.CubeCount = &v
			}
			if f.Changed("total") {
				v, _ := f.GetInt("total")
				patch.TotalWeight = &v
			}
			if f.Changed("note") {
				v, _ := f.GetString("note")
				patch.Note = &v
			}
			return report(cmd, a.store.UpdateManufacturingRecord(args[0], patch), "updated archive record %s", args[0])
		},
	}
	updateCmd.Flags().String("title", "", "title")
	updateCmd.Flags().Int("weight", 0, "grams per cube")
	updateCmd.Flags().Int("count", 0, "number of cubes")
	updateCmd.Flags().Int("total", 0, "total grams")
	updateCmd.Flags().String("note", "", "note")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a batch record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, a.store.DeleteManufacturingRecord(args[0]), "deleted archive record %s", args[0])
		},
	}

	archiveCmd.AddCommand(addCmd, listCmd, showCmd, updateCmd, deleteCmd)
	return archiveCmd
}
