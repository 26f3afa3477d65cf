package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisdamba/weaning/internal/cloudwriter"
	"github.com/chrisdamba/weaning/internal/logger"
	"github.com/chrisdamba/weaning/internal/models"
	"github.com/chrisdamba/weaning/internal/store"
	"github.com/google/go-cmp/cmp"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

func sampleState() store.State {
	state := store.DefaultState()
	state.WeightPerCube = 25
	state.Plans = []models.DayPlan{
		{Date: "2024-01-03", Meals: []models.MealRecord{
			{ID: "m3", Title: "Rice porridge", Type: models.MealTypeBreakfast, FedTime: "08:00", Amount: "60g",
				Ingredients: []models.Ingredient{{Name: "Rice"}, {Name: "Beef", IsNew: true}}},
		}},
		{Date: "2024-01-02", Meals: []models.MealRecord{
			{ID: "m1", Title: "Carrot cube", Type: models.MealTypeTimeBased, FedTime: "07:30", Amount: "",
				Ingredients: []models.Ingredient{{Name: "Carrot"}}, IsFromCube: true, CubeID: "c1"},
			{ID: "m2", Title: "Pumpkin", Type: models.MealTypeLunch, FedTime: "12:00", Amount: "1 cube"},
		}},
	}
	return state
}

func TestRows(t *testing.T) {
	want := []MealRow{
		{Date: "2024-01-02", ID: "m1", Title: "Carrot cube", Type: "time_based", FedTime: "07:30", Grams: 25,
			Ingredients: []string{"Carrot"}, FromCube: true, CubeID: "c1"},
		{Date: "2024-01-02", ID: "m2", Title: "Pumpkin", Type: "lunch", FedTime: "12:00", Amount: "1 cube", Grams: 1,
			Ingredients: []string{}},
		{Date: "2024-01-03", ID: "m3", Title: "Rice porridge", Type: "breakfast", FedTime: "08:00", Amount: "60g", Grams: 60,
			Ingredients: []string{"Rice", "Beef"}},
	}
	if diff := cmp.Diff(want, Rows(sampleState())); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"json": FormatJSON, "JSONL": FormatJSON, " csv ": FormatCSV, "parquet": FormatParquet, "postgres": FormatPostgres}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestExportJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.jsonl")
	rows := Rows(sampleState())

	n, err := New(FormatJSON, logger.Nop()).Export(context.Background(), rows, path)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	var got []MealRow
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r MealRow
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		got = append(got, r)
	}
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.csv")
	var progress bytes.Buffer

	if _, err := New(FormatCSV, logger.Nop(), WithProgress(&progress)).Export(context.Background(), Rows(sampleState()), path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if diff := cmp.Diff(Header, records[0]); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	want := []string{"2024-01-03", "m3", "Rice porridge", "breakfast", "08:00", "60g", "60", "Rice;Beef", "false", ""}
	if diff := cmp.Diff(want, records[3]); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
	if progress.Len() == 0 {
		t.Fatal("expected progress output")
	}
}

func TestExportParquetLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.parquet")
	rows := Rows(sampleState())

	if _, err := New(FormatParquet, logger.Nop()).Export(context.Background(), rows, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		t.Fatalf("open parquet: %v", err)
	}
	defer fr.Close()
	pr, err := reader.NewParquetReader(fr, new(MealRow), 1)
	if err != nil {
		t.Fatalf("parquet reader: %v", err)
	}
	defer pr.ReadStop()
	if pr.GetNumRows() != int64(len(rows)) {
		t.Fatalf("expected %d rows, got %d", len(rows), pr.GetNumRows())
	}
	got := make([]MealRow, pr.GetNumRows())
	if err := pr.Read(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	for i := range got {
		if got[i].ID != rows[i].ID || got[i].Grams != rows[i].Grams || len(got[i].Ingredients) != len(rows[i].Ingredients) {
			t.Fatalf("row %d mismatch: want %+v, got %+v", i, rows[i], got[i])
		}
	}
}

type memWriter struct {
	buf    *bytes.Buffer
	closed *bool
}

func (m memWriter) Write(p []byte) (int, error) { return m.buf.Write(p) }
func (m memWriter) Close() error                { *m.closed = true; return nil }

type memFactory struct {
	objects map[string]*bytes.Buffer
	closed  map[string]*bool
}

func newMemFactory() *memFactory {
	return &memFactory{objects: map[string]*bytes.Buffer{}, closed: map[string]*bool{}}
}

func (f *memFactory) NewWriter(bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	key := bucket + "/" + objectPath
	f.objects[key] = &bytes.Buffer{}
	f.closed[key] = new(bool)
	return memWriter{buf: f.objects[key], closed: f.closed[key]}, nil
}

func TestExportToCloud(t *testing.T) {
	factory := newMemFactory()
	rows := Rows(sampleState())
	ctx := context.Background()

	if _, err := New(FormatJSON, logger.Nop(), WithCloud(factory, "bucket")).Export(ctx, rows, "exports/meals.jsonl"); err != nil {
		t.Fatalf("json export: %v", err)
	}
	if _, err := New(FormatParquet, logger.Nop(), WithCloud(factory, "bucket")).Export(ctx, rows, "exports/meals.parquet"); err != nil {
		t.Fatalf("parquet export: %v", err)
	}

	for key, buf := range factory.objects {
		if !*factory.closed[key] {
			t.Errorf("%s was never closed", key)
		}
		if buf.Len() == 0 {
			t.Errorf("%s is empty", key)
		}
	}
	pq := factory.objects["bucket/exports/meals.parquet"].Bytes()
	if !bytes.HasPrefix(pq, []byte("PAR1")) || !bytes.HasSuffix(pq, []byte("PAR1")) {
		t.Fatal("parquet object is missing its magic bytes")
	}
}

func TestPostgresOutputValidation(t *testing.T) {
	if _, err := NewPostgresOutput(""); err == nil {
		t.Fatal("expected error for empty dsn")
	}
	out := &PostgresOutput{}
	if err := out.ReplaceMeals(context.Background(), "meals; DROP TABLE x", nil, func() {}); err == nil {
		t.Fatal("expected error for invalid table name")
	}
}
