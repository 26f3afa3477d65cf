package cmd

import (
	"fmt"
	"time"

	"github.com/chrisdamba/weaning/internal/factories"
	"github.com/chrisdamba/weaning/internal/models"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the store with demo data ending on the selected date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var opts factories.SeedOptions
			opts.Days, _ = f.GetInt("days")
			opts.Cubes, _ = f.GetInt("cubes")
			opts.Orders, _ = f.GetInt("orders")
			opts.Preps, _ = f.GetInt("preps")
			seed, _ := f.GetInt64("seed")

			selected, err := models.ParseDate(a.store.SelectedDate())
			if err != nil {
				return err
			}
			bar := progressbar.NewOptions(opts.Steps(),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("seeding"),
				progressbar.OptionShowCount(),
				progressbar.OptionThrottle(65*time.Millisecond),
				progressbar.OptionClearOnFinish(),
			)
			res := factories.Seed(a.store, factories.New(seed, selected), opts, func() { _ = bar.Add(1) })
			_ = bar.Finish()

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d cubes, %d orders, %d preps, %d meals, %d cube feedings, %d statuses\n",
				res.Cubes, res.Orders, res.Preps, res.Meals, res.Feedings, res.Statuses)
			return nil
		},
	}
	seedCmd.Flags().Int("days", 14, "days of meal history")
	seedCmd.Flags().Int("cubes", 6, "cube batches")
	seedCmd.Flags().Int("orders", 4, "grocery orders")
	seedCmd.Flags().Int("preps", 3, "preparation reminders")
	seedCmd.Flags().Int64("seed", 0, "random seed (0 picks one)")
	return seedCmd
}
