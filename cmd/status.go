package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Ingredient reaction statuses",
	}

	setCmd := &cobra.Command{
		Use:   "set <ingredient> <none|success|allergic|watching>",
		Short: "Record how an ingredient went",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := models.ParseIngredientStatus(args[1])
			if err != nil {
				return err
			}
			a.store.SetIngredientStatus(args[0], status)
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], status)
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <ingredient>",
		Short: "Show an ingredient's status (success when never recorded)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.store.IngredientStatus(args[0]))
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every recorded status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := a.store.Snapshot().Statuses
			names := make([]string, 0, len(statuses))
			for name := range statuses {
				names = append(names, name)
			}
			sort.Strings(names)
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "INGREDIENT\tSTATUS")
			for _, name := range names {
				fmt.Fprintf(tw, "%s\t%s\n", name, statuses.Status(name))
			}
			return tw.Flush()
		},
	}

	statusCmd.AddCommand(setCmd, getCmd, listCmd)
	return statusCmd
}

func newWeightCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weight [grams]",
		Short: "Show or set the default grams per cube",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%dg\n", a.store.WeightPerCube())
				return nil
			}
			grams, err := strconv.Atoi(args[0])
			if err != nil || grams <= 0 {
				return fmt.Errorf("weight must be a positive number of grams, got %q", args[0])
			}
			a.store.SetWeightPerCube(grams)
			fmt.Fprintf(cmd.OutOrStdout(), "weight per cube set to %dg\n", grams)
			return nil
		},
	}
}
