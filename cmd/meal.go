package cmd

import (
	"fmt"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/spf13/cobra"
)

func newMealCmd(a *app) *cobra.Command {
	mealCmd := &cobra.Command{
		Use:   "meal",
		Short: "Log and edit meals",
	}

	ingredients := func(cmd *cobra.Command) []models.Ingredient {
		known, _ := cmd.Flags().GetStringArray("ingredient")
		fresh, _ := cmd.Flags().GetStringArray("new")
		out := make([]models.Ingredient, 0, len(known)+len(fresh))
		for _, name := range known {
			out = append(out, models.Ingredient{Name: name, Status: a.store.IngredientStatus(name)})
		}
		for _, name := range fresh {
			out = append(out, models.Ingredient{Name: name, IsNew: true, Status: a.store.IngredientStatus(name)})
		}
		return out
	}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Log a meal on the selected date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			typ, _ := f.GetString("type")
			mealType, err := models.ParseMealType(typ)
			if err != nil {
				return err
			}
			fedTime, _ := f.GetString("time")
			if err := models.ValidateFedTime(fedTime); err != nil {
				return err
			}
			notes, _ := f.GetString("notes")
			amount, _ := f.GetString("amount")
			date := a.store.SelectedDate()
			meal := a.store.AddMeal(date, models.MealRecord{
				Title:       args[0],
				Type:        mealType,
				FedTime:     fedTime,
				Ingredients: ingredients(cmd),
				Notes:       notes,
				Amount:      amount,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "logged meal %s on %s\n", meal.ID, date)
			return nil
		},
	}
	addCmd.Flags().String("type", string(models.MealTypeTimeBased), "breakfast, lunch, dinner, snack or time_based")
	addCmd.Flags().String("time", "", "fed time, HH:MM")
	addCmd.Flags().StringArray("ingredient", nil, "ingredient already introduced (repeatable)")
	addCmd.Flags().StringArray("new", nil, "ingredient tried for the first time (repeatable)")
	addCmd.Flags().String("notes", "", "free-form notes")
	addCmd.Flags().String("amount", "", `amount eaten, e.g. "60g"`)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the meals of the selected date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _ := a.store.Plan(a.store.SelectedDate())
			printMeals(cmd.OutOrStdout(), plan.Meals)
			return nil
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a meal on any date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var patch models.MealPatch
			if f.Changed("title") {
				v, _ := f.GetString("title")
				patch.Title = &v
			}
			if f.Changed("type") {
				v, _ := f.GetString("type")
				t, err := models.ParseMealType(v)
				if err != nil {
					return err
				}
				patch.Type = &t
			}
			if f.Changed("time") {
				v, _ := f.GetString("time")
				if err := models.ValidateFedTime(v); err != nil {
					return err
				}
				patch.FedTime = &v
			}
			if f.Changed("notes") {
				v, _ := f.GetString("notes")
				patch.Notes = &v
			}
			if f.Changed("amount") {
				v, _ := f.GetString("amount")
				patch.Amount = &v
			}
			if f.Changed("ingredient") || f.Changed("new") {
				patch.Ingredients = ingredients(cmd)
			}
			return report(cmd, a.store.UpdateMeal(args[0], patch), "updated meal %s", args[0])
		},
	}
	updateCmd.Flags().String("title", "", "title")
	updateCmd.Flags().String("type", "", "meal type")
	updateCmd.Flags().String("time", "", "fed time, HH:MM")
	updateCmd.Flags().StringArray("ingredient", nil, "replace ingredients (repeatable)")
	updateCmd.Flags().StringArray("new", nil, "replace with new ingredients (repeatable)")
	updateCmd.Flags().String("notes", "", "notes")
	updateCmd.Flags().String("amount", "", "amount eaten")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a meal from the selected date; a cube feeding returns its cube",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, a.store.DeleteMeal(args[0]), "deleted meal %s", args[0])
		},
	}

	mealCmd.AddCommand(addCmd, listCmd, updateCmd, deleteCmd)
	return mealCmd
}
