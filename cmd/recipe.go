package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/chrisdamba/weaning/internal/recipe"
	"github.com/spf13/cobra"
)

func (a *app) recipeHelper() *recipe.Helper {
	rc := a.cfg.Recipe
	client := recipe.NewClient(rc.APIKey, a.log,
		recipe.WithEndpoint(rc.Endpoint),
		recipe.WithModel(rc.Model),
		recipe.WithTemperature(rc.Temperature),
		recipe.WithHTTPTimeout(rc.Timeout),
	)
	return recipe.NewHelper(client)
}

func newRecipeCmd(a *app) *cobra.Command {
	recipeCmd := &cobra.Command{
		Use:   "recipe <query>",
		Short: "Ask for a recipe scaled to your cube size and count",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			query := strings.Join(args, " ")
			weight, _ := f.GetInt("weight")
			if weight <= 0 {
				weight = a.store.WeightPerCube()
			}
			count, _ := f.GetInt("count")
			if count <= 0 {
				count = a.cfg.TargetCount
			}
			req := recipe.Request{Query: query, WeightPerCube: weight, TargetCount: count}
			req.Prompt, _ = f.GetString("prompt")

			text, err := a.recipeHelper().Search(cmd.Context(), req)
			if err != nil {
				a.log.Debug("recipe search: %v", err)
				return errors.New(recipe.UserMessage(err))
			}
			if raw, _ := f.GetBool("raw"); !raw {
				text = recipe.Clean(text)
			}
			out := cmd.OutOrStdout()
			if strings.TrimSpace(text) == "" {
				fmt.Fprintln(out, "(the model returned no text)")
			} else {
				fmt.Fprintln(out, text)
			}

			if save, _ := f.GetBool("save"); save {
				r := a.store.SaveRecipe(models.SavedRecipe{
					Query:         query,
					Text:          text,
					WeightPerCube: weight,
					TargetCount:   count,
				})
				fmt.Fprintf(out, "\nsaved recipe %s\n", r.ID)
			}
			if accept, _ := f.GetBool("accept"); accept {
				r := a.store.AddManufacturingRecord(models.ManufacturingRecord{
					Title:       query,
					CubeWeight:  weight,
					CubeCount:   count,
					TotalWeight: weight * count,
					Note:        recipe.Clean(text),
				})
				fmt.Fprintf(out, "\narchived batch %s\n", r.ID)
			}
			return nil
		},
	}
	f := recipeCmd.Flags()
	f.Int("weight", 0, "grams per cube (default global weight)")
	f.Int("count", 0, "number of cubes (default target_count)")
	f.String("prompt", "", "send this prompt instead of the built-in one")
	f.Bool("raw", false, "print the answer without stripping markdown symbols")
	f.Bool("save", false, "keep the answer in the saved recipes")
	f.Bool("accept", false, "record the batch in the archive with the recipe as its note")

	savedCmd := &cobra.Command{
		Use:   "saved",
		Short: "List saved recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tSAVED\tQUERY\tBATCH")
			for _, r := range a.store.Snapshot().Recipes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02"), r.Query,
					recipe.SummaryLine(recipe.Request{WeightPerCube: r.WeightPerCube, TargetCount: r.TargetCount}))
			}
			return tw.Flush()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range a.store.Snapshot().Recipes {
				if r.ID == args[0] {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", r.Query, r.Text)
					return nil
				}
			}
			return fmt.Errorf("no saved recipe %s", args[0])
		},
	}

	forgetCmd := &cobra.Command{
		Use:   "forget <id>",
		Short: "Delete a saved recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, a.store.DeleteRecipe(args[0]), "forgot recipe %s", args[0])
		},
	}

	recipeCmd.AddCommand(savedCmd, showCmd, forgetCmd)
	return recipeCmd
}
