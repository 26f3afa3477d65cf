// Package export writes the meal history out of the store for use in other
// tools: JSON lines, CSV or Parquet files, locally or to S3, or a Postgres table.
package export

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chrisdamba/weaning/internal/store"
	"github.com/chrisdamba/weaning/internal/views"
)

// MealRow is one fed meal, flattened.
type MealRow struct {
	Date        string   `json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	ID          string   `json:"id" parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Title       string   `json:"title" parquet:"name=title, type=BYTE_ARRAY, convertedtype=UTF8"`
	Type        string   `json:"type" parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8"`
	FedTime     string   `json:"fedTime,omitempty" parquet:"name=fed_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	Amount      string   `json:"amount" parquet:"name=amount, type=BYTE_ARRAY, convertedtype=UTF8"`
	Grams       int32    `json:"grams" parquet:"name=grams, type=INT32"`
	Ingredients []string `json:"ingredients" parquet:"name=ingredients, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=REPEATED"`
	FromCube    bool     `json:"fromCube" parquet:"name=from_cube, type=BOOLEAN"`
	CubeID      string   `json:"cubeId,omitempty" parquet:"name=cube_id, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// Header is the CSV column order.
var Header = []string{"date", "id", "title", "type", "fed_time", "amount", "grams", "ingredients", "from_cube", "cube_id"}

func (r MealRow) record() []string {
	return []string{
		r.Date, r.ID, r.Title, r.Type, r.FedTime, r.Amount,
		strconv.Itoa(int(r.Grams)),
		strings.Join(r.Ingredients, ";"),
		strconv.FormatBool(r.FromCube),
		r.CubeID,
	}
}

// Rows flattens every plan, oldest day first, meals in fed-time order.
func Rows(state store.State) []MealRow {
	plans := append(state.Plans[:0:0], state.Plans...)
	sort.SliceStable(plans, func(i, j int) bool { return plans[i].Date < plans[j].Date })

	var rows []MealRow
	for _, plan := range plans {
		for _, m := range plan.Meals {
			names := make([]string, 0, len(m.Ingredients))
			for _, ing := range m.Ingredients {
				names = append(names, ing.Name)
			}
			rows = append(rows, MealRow{
				Date:        plan.Date,
				ID:          m.ID,
				Title:       m.Title,
				Type:        string(m.Type),
				FedTime:     m.FedTime,
				Amount:      m.Amount,
				Grams:       int32(views.MealWeight(m.Amount, state.WeightPerCube)),
				Ingredients: names,
				FromCube:    m.IsFromCube,
				CubeID:      m.CubeID,
			})
		}
	}
	return rows
}
