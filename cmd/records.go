package cmd

import (
	"fmt"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/spf13/cobra"
)

// dateFlag returns --date on a subcommand, or the selected date.
func dateFlag(a *app, cmd *cobra.Command, name string) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return a.store.SelectedDate(), nil
	}
	if _, err := models.ParseDate(v); err != nil {
		return "", err
	}
	return v, nil
}

func newOrderCmd(a *app) *cobra.Command {
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Track grocery orders",
	}

	addCmd := &cobra.Command{
		Use:   "add <item>",
		Short: "Record an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFlag(a, cmd, "on")
			if err != nil {
				return err
			}
			o := a.store.AddOrder(models.OrderRecord{ItemName: args[0], OrderDate: date})
			fmt.Fprintf(cmd.OutOrStdout(), "added order %s (%s on %s)\n", o.ID, o.ItemName, o.OrderDate)
			return nil
		},
	}
	addCmd.Flags().String("on", "", "order date (default selected date)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printOrders(cmd.OutOrStdout(), a.store.Snapshot().Orders)
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the received flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, a.store.ToggleOrder(args[0]), "toggled order %s", args[0])
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var patch models.OrderPatch
			if f.Changed("item") {
				v, _ := f.GetString("item")
				patch.ItemName = &v
			}
			if f.Changed("on") {
				v, err := dateFlag(a, cmd, "on")
				if err != nil {
					return err
				}
				patch.OrderDate = &v
			}
			if f.Changed("received") {
				v, _ := f.GetBool("received")
				patch.IsReceived = &v
			}
			return report(cmd, a.store.UpdateOrder(args[0], patch), "updated order %s", args[0])
		},
	}
	updateCmd.Flags().String("item", "", "item name")
	updateCmd.Flags().String("on", "", "order date")
	updateCmd.Flags().Bool("received", false, "received flag")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, a.store.DeleteOrder(args[0]), "deleted order %s", args[0])
		},
	}

	orderCmd.AddCommand(addCmd, listCmd, toggleCmd, updateCmd, deleteCmd)
	return orderCmd
}

func newPrepCmd(a *app) *cobra.Command {
	prepCmd := &cobra.Command{
		Use:   "prep",
		Short: "Track ingredient preparation reminders",
	}

	addCmd := &cobra.Command{
		Use:   "add <item>",
		Short: "Schedule a preparation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFlag(a, cmd, "on")
			if err != nil {
				return err
			}
			p := a.store.AddPrep(models.PreparationRecord{ItemName: args[0], PrepDate: date})
			fmt.Fprintf(cmd.OutOrStdout(), "added prep %s (%s on %s)\n", p.ID, p.ItemName, p.PrepDate)
			return nil
		},
	}
	addCmd.Flags().String("on", "", "prep date (default selected date)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List preparations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printPreps(cmd.OutOrStdout(), a.store.Snapshot().Preps)
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, a.store.TogglePrep(args[0]), "toggled prep %s", args[0])
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a preparation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var patch models.PrepPatch
			if f.Changed("item") {
				v, _ := f.GetString("item")
				patch.ItemName = &v
			}
			if f.Changed("on") {
				v, err := dateFlag(a, cmd, "on")
				if err != nil {
					return err
				}
				patch.PrepDate = &v
			}
			if f.Changed("done") {
				v, _ := f.GetBool("done")
				patch.IsCompleted = &v
			}
			return report(cmd, a.store.UpdatePrep(args[0], patch), "updated prep %s", args[0])
		},
	}
	updateCmd.Flags().String("item", "", "item name")
	updateCmd.Flags().String("on", "", "prep date")
	updateCmd.Flags().Bool("done", false, "completed flag")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a preparation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, a.store.DeletePrep(args[0]), "deleted prep %s", args[0])
		},
	}

	prepCmd.AddCommand(addCmd, listCmd, toggleCmd, updateCmd, deleteCmd)
	return prepCmd
}
