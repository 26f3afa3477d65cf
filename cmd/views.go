package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/chrisdamba/weaning/internal/views"
	"github.com/spf13/cobra"
)

func newDayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "day",
		Short: "Show everything on the selected date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.store.Snapshot()
			date := a.store.SelectedDate()
			ev := views.Events(state, date)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s\n", date)
			if ev.Empty() {
				fmt.Fprintln(out, "nothing recorded")
				return nil
			}
			if len(ev.CubesMade) > 0 {
				fmt.Fprintln(out, "\n[cubes made]")
				printCubes(out, ev.CubesMade, date, state.WeightPerCube)
			}
			if len(ev.CubesExpiring) > 0 {
				fmt.Fprintln(out, "\n[cubes expiring]")
				printCubes(out, ev.CubesExpiring, date, state.WeightPerCube)
			}
			if len(ev.Orders) > 0 {
				fmt.Fprintln(out, "\n[orders]")
				printOrders(out, ev.Orders)
			}
			if len(ev.Preps) > 0 {
				fmt.Fprintln(out, "\n[preps]")
				printPreps(out, ev.Preps)
			}
			if len(ev.Meals) > 0 {
				fmt.Fprintln(out, "\n[meals]")
				printMeals(out, ev.Meals)
			}
			return nil
		},
	}
}

func newMonthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Calendar of a month with per-day markers",
		Long: `Prints a Sunday-first calendar. Markers after the day number:
  m meals   c cubes made   x cubes expiring   o orders   p preps`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := a.store.SelectedDate()[:7]
			if len(args) == 1 {
				month = args[0]
			}
			days, err := views.MonthEvents(a.store.Snapshot(), month)
			if err != nil {
				return err
			}
			printMonth(cmd.OutOrStdout(), month, days)
			return nil
		},
	}
}

func markers(ev views.DayEvents) string {
	var sb strings.Builder
	for _, m := range []struct {
		n    int
		mark byte
	}{
		{len(ev.Meals), 'm'},
		{len(ev.CubesMade), 'c'},
		{len(ev.CubesExpiring), 'x'},
		{len(ev.Orders), 'o'},
		{len(ev.Preps), 'p'},
	} {
		if m.n > 0 {
			sb.WriteByte(m.mark)
		}
	}
	return sb.String()
}

func printMonth(w io.Writer, month string, days []views.DayEvents) {
	fmt.Fprintf(w, "%s\n", month)
	fmt.Fprintln(w, "Sun      Mon      Tue      Wed      Thu      Fri      Sat")
	for i, ev := range days {
		cell := ev.Date[8:]
		if ev.Date[:7] != month {
			cell = "  "
		} else {
			cell += markers(ev)
		}
		fmt.Fprintf(w, "%-9s", cell)
		if i%7 == 6 {
			fmt.Fprintln(w)
		}
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Ingredient tally and stock summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := views.IngredientStatistics(a.store.Snapshot(), models.Today(a.now()))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "meals: %d  fed: %dg  cubes in stock: %d  expired: %d  expiring soon: %d\n",
				st.TotalMeals, st.TotalWeight, st.CubesInStock, st.ExpiredCubes, st.ExpiringSoon)
			for _, bucket := range []struct {
				title string
				items []views.IngredientCount
			}{
				{"success", st.Success},
				{"watching", st.Watching},
				{"allergic", st.Allergic},
			} {
				fmt.Fprintf(out, "\n[%s]\n", bucket.title)
				if len(bucket.items) == 0 {
					fmt.Fprintln(out, "-")
					continue
				}
				for _, it := range bucket.items {
					fmt.Fprintf(out, "%s %d\n", it.Name, it.Count)
				}
			}
			return nil
		},
	}
}
