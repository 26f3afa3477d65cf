package cmd

import (
	"fmt"
	"strconv"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/spf13/cobra"
)

func newCubeCmd(a *app) *cobra.Command {
	cubeCmd := &cobra.Command{
		Use:   "cube",
		Short: "Manage frozen food cubes",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Record a new batch of cubes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			made, _ := f.GetString("made")
			if made == "" {
				made = a.store.SelectedDate()
			}
			if _, err := models.ParseDate(made); err != nil {
				return err
			}
			expiry, _ := f.GetString("expiry")
			if expiry != "" {
				if _, err := models.ParseDate(expiry); err != nil {
					return err
				}
			}
			qty, _ := f.GetInt("qty")
			color, _ := f.GetString("color")
			weight, _ := f.GetInt("weight")
			cube := a.store.AddCube(models.CubeRecord{
				Name:       args[0],
				MadeDate:   made,
				ExpiryDate: expiry,
				Quantity:   max(0, qty),
				Color:      color,
				Weight:     max(0, weight),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "added cube %s (%s x%d, expires %s)\n", cube.ID, cube.Name, cube.Quantity, cube.ExpiryDate)
			return nil
		},
	}
	addCmd.Flags().String("made", "", "made date (default selected date)")
	addCmd.Flags().String("expiry", "", "expiry date (default made + 14 days)")
	addCmd.Flags().Int("qty", 1, "number of cubes")
	addCmd.Flags().String("color", "", "display color")
	addCmd.Flags().Int("weight", 0, "grams per cube (0 uses the global weight)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cubes with their expiry status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.store.Snapshot()
			printCubes(cmd.OutOrStdout(), state.Cubes, a.store.SelectedDate(), state.WeightPerCube)
			return nil
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a cube; a new made date recomputes the expiry unless --pin-expiry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var patch models.CubePatch
			if f.Changed("name") {
				v, _ := f.GetString("name")
				patch.Name = &v
			}
			if f.Changed("made") {
				v, _ := f.GetString("made")
				if _, err := models.ParseDate(v); err != nil {
					return err
				}
				patch.MadeDate = &v
			}
			if f.Changed("expiry") {
				v, _ := f.GetString("expiry")
				if _, err := models.ParseDate(v); err != nil {
					return err
				}
				patch.ExpiryDate = &v
			}
			if f.Changed("qty") {
				v, _ := f.GetInt("qty")
				patch.Quantity = &v
			}
			if f.Changed("color") {
				v, _ := f.GetString("color")
				patch.Color = &v
			}
			if f.Changed("weight") {
				v, _ := f.GetInt("weight")
				v = max(0, v)
				patch.Weight = &v
			}
			patch.PinExpiry, _ = f.GetBool("pin-expiry")
			return report(cmd, a.store.UpdateCube(args[0], patch), "updated cube %s", args[0])
		},
	}
	updateCmd.Flags().String("name", "", "ingredient name")
	updateCmd.Flags().String("made", "", "made date")
	updateCmd.Flags().String("expiry", "", "expiry date")
	updateCmd.Flags().Int("qty", 0, "quantity")
	updateCmd.Flags().String("color", "", "display color")
	updateCmd.Flags().Int("weight", 0, "grams per cube")
	updateCmd.Flags().Bool("pin-expiry", false, "keep --expiry even when --made changes")

	adjustCmd := &cobra.Command{
		Use:   "adjust <id> <delta>",
		Short: "Add or remove cubes from stock (never below zero)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[1], err)
			}
			return report(cmd, a.store.AdjustCubeQuantity(args[0], delta), "adjusted cube %s by %d", args[0], delta)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a cube; meals fed from it are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, a.store.DeleteCube(args[0]), "deleted cube %s", args[0])
		},
	}

	feedCmd := &cobra.Command{
		Use:   "feed <id>",
		Short: "Feed one cube on the selected date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fedTime, _ := cmd.Flags().GetString("time")
			if err := models.ValidateFedTime(fedTime); err != nil {
				return err
			}
			meal, ok := a.store.FeedCube(args[0], fedTime)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "cube %s is unknown or out of stock\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fed %s on %s (meal %s)\n", meal.Title, a.store.SelectedDate(), meal.ID)
			return nil
		},
	}
	feedCmd.Flags().String("time", "", "fed time, HH:MM")

	cubeCmd.AddCommand(addCmd, listCmd, updateCmd, adjustCmd, deleteCmd, feedCmd)
	return cubeCmd
}

// report prints the outcome of a mutation. An unknown id is not an error.
func report(cmd *cobra.Command, ok bool, format string, args ...any) error {
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing changed: no record with that id")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	return nil
}
