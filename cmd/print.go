package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/chrisdamba/weaning/internal/views"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printCubes(w io.Writer, cubes []models.CubeRecord, today string, weightPerCube int) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tWEIGHT\tMADE\tEXPIRES\tSTATUS")
	for _, c := range cubes {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%dg\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Quantity, c.UnitWeight(weightPerCube),
			c.MadeDate, c.ExpiryDate, views.ExpiryStatus(c, today).Label())
	}
	tw.Flush()
}

func printMeals(w io.Writer, meals []models.MealRecord) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTIME\tTYPE\tTITLE\tAMOUNT\tINGREDIENTS")
	for _, m := range meals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, dash(m.FedTime), m.Type, m.Title, dash(m.Amount), ingredientList(m.Ingredients))
	}
	tw.Flush()
}

func printOrders(w io.Writer, orders []models.OrderRecord) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tITEM\tRECEIVED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.OrderDate, o.ItemName, check(o.IsReceived))
	}
	tw.Flush()
}

func printPreps(w io.Writer, preps []models.PreparationRecord) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tITEM\tDONE")
	for _, p := range preps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.PrepDate, p.ItemName, check(p.IsCompleted))
	}
	tw.Flush()
}

func ingredientList(ings []models.Ingredient) string {
	names := make([]string, 0, len(ings))
	for _, ing := range ings {
		if ing.IsNew {
			names = append(names, ing.Name+" (new)")
			continue
		}
		names = append(names, ing.Name)
	}
	return dash(strings.Join(names, ", "))
}

func check(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
