package store

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/chrisdamba/weaning/internal/models"
	"github.com/google/go-cmp/cmp"
)

var fixedNow = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

type recorder struct {
	slots []Slot
}

func (r *recorder) Changed(slot Slot, _ any) { r.slots = append(r.slots, slot) }

func setupStore(t *testing.T, opts ...Option) (*Store, *recorder) {
	t.Helper()
	n := 0
	rec := &recorder{}
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		WithObserver(rec),
		WithSelectedDate("2024-01-02"),
	}
	return New(DefaultState(), append(base, opts...)...), rec
}

func carrot() models.CubeRecord {
	return models.CubeRecord{Name: "Carrot", MadeDate: "2024-01-01", Quantity: 5, Weight: 20, Color: "#fff"}
}

func TestAddCubeDerivesExpiry(t *testing.T) {
	s, rec := setupStore(t)

	cube := s.AddCube(carrot())
	if cube.ID == "" {
		t.Fatal("cube id is empty")
	}
	if cube.ExpiryDate != "2024-01-15" {
		t.Fatalf("expected expiry 2024-01-15, got %s", cube.ExpiryDate)
	}
	if cube.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cube.Quantity)
	}
	if diff := cmp.Diff([]Slot{SlotCubes}, rec.slots); diff != "" {
		t.Fatalf("notified slots mismatch (-want +got):\n%s", diff)
	}
}

func TestAddCubePrependsAndKeepsExplicitExpiry(t *testing.T) {
	s, _ := setupStore(t)

	first := s.AddCube(carrot())
	second := models.CubeRecord{Name: "Pea", MadeDate: "2024-01-01", ExpiryDate: "2024-01-10", Quantity: 1}
	got := s.AddCube(second)

	if got.ExpiryDate != "2024-01-10" {
		t.Fatalf("explicit expiry overwritten: %s", got.ExpiryDate)
	}
	cubes := s.Snapshot().Cubes
	if cubes[0].ID != got.ID || cubes[1].ID != first.ID {
		t.Fatalf("expected newest cube first, got %v", cubes)
	}
}

func TestFeedCubeScenario(t *testing.T) {
	s, rec := setupStore(t)
	cube := s.AddCube(carrot())
	rec.slots = nil

	var mealIDs []string
	for i := 0; i < 3; i++ {
		meal, ok := s.FeedCube(cube.ID, "08:30")
		if !ok {
			t.Fatalf("feed %d: expected success", i)
		}
		mealIDs = append(mealIDs, meal.ID)
	}

	got, _ := s.Cube(cube.ID)
	if got.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", got.Quantity)
	}

	plan, ok := s.Plan("2024-01-02")
	if !ok {
		t.Fatal("expected a day plan for 2024-01-02")
	}
	if len(plan.Meals) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(plan.Meals))
	}
	for i, m := range plan.Meals {
		if m.ID != mealIDs[i] {
			t.Fatalf("meal %d: equal fed times must keep insertion order", i)
		}
		if m.Amount != "20g" || !m.IsFromCube || m.CubeID != cube.ID || m.Type != models.MealTypeTimeBased {
			t.Fatalf("unexpected meal %+v", m)
		}
		want := []models.Ingredient{{Name: "Carrot", IsNew: false, Status: models.StatusSuccess}}
		if diff := cmp.Diff(want, m.Ingredients); diff != "" {
			t.Fatalf("ingredients mismatch (-want +got):\n%s", diff)
		}
	}

	wantSlots := []Slot{SlotCubes, SlotPlans, SlotCubes, SlotPlans, SlotCubes, SlotPlans}
	if diff := cmp.Diff(wantSlots, rec.slots); diff != "" {
		t.Fatalf("notified slots mismatch (-want +got):\n%s", diff)
	}

	// Deleting one of the fed meals restores a cube.
	if !s.DeleteMeal(mealIDs[1]) {
		t.Fatal("expected delete to find the meal")
	}
	got, _ = s.Cube(cube.ID)
	if got.Quantity != 3 {
		t.Fatalf("expected quantity 3 after delete, got %d", got.Quantity)
	}
	plan, _ = s.Plan("2024-01-02")
	if len(plan.Meals) != 2 {
		t.Fatalf("expected 2 meals after delete, got %d", len(plan.Meals))
	}
}

func TestFeedCubeUsesSelectedDateAndGlobalWeight(t *testing.T) {
	s, _ := setupStore(t)
	s.SetWeightPerCube(30)
	s.SetIngredientStatus("Pumpkin", models.StatusWatching)
	cube := s.AddCube(models.CubeRecord{Name: "Pumpkin", MadeDate: "2023-12-20", Quantity: 1})

	s.SetSelectedDate("2024-03-05")
	meal, ok := s.FeedCube(cube.ID, "12:00")
	if !ok {
		t.Fatal("expected feed to succeed")
	}
	if meal.Amount != "30g" {
		t.Fatalf("expected global weight 30g, got %s", meal.Amount)
	}
	if meal.Ingredients[0].Status != models.StatusWatching {
		t.Fatalf("expected watching status, got %s", meal.Ingredients[0].Status)
	}
	if _, ok := s.Plan("2023-12-20"); ok {
		t.Fatal("meal must not land on the cube's made date")
	}
	if _, ok := s.Plan("2024-03-05"); !ok {
		t.Fatal("meal must land on the selected date")
	}
}

func TestFeedCubeBlocked(t *testing.T) {
	s, rec := setupStore(t)
	empty := s.AddCube(models.CubeRecord{Name: "Rice", MadeDate: "2024-01-01", Quantity: 0})
	rec.slots = nil

	tests := []struct {
		name   string
		cubeID string
	}{
		{"zero stock", empty.ID},
		{"unknown cube", "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := s.FeedCube(tt.cubeID, "10:00"); ok {
				t.Fatal("expected feed to be refused")
			}
			if len(s.Snapshot().Plans) != 0 {
				t.Fatal("expected no day plan to be created")
			}
			if len(rec.slots) != 0 {
				t.Fatalf("expected no notifications, got %v", rec.slots)
			}
		})
	}
}

func TestAdjustCubeQuantityFloor(t *testing.T) {
	s, _ := setupStore(t)
	cube := s.AddCube(models.CubeRecord{Name: "Beef", MadeDate: "2024-01-01", Quantity: 1})

	for _, delta := range []int{-1, -1, -5, 2, -10, 3} {
		s.AdjustCubeQuantity(cube.ID, delta)
		got, _ := s.Cube(cube.ID)
		if got.Quantity < 0 {
			t.Fatalf("quantity went negative after delta %d: %d", delta, got.Quantity)
		}
	}
	got, _ := s.Cube(cube.ID)
	if got.Quantity != 3 {
		t.Fatalf("expected final quantity 3, got %d", got.Quantity)
	}

	if s.AdjustCubeQuantity("missing", 1) {
		t.Fatal("expected unknown id to be a no-op")
	}
}

func TestUpdateCubeExpiry(t *testing.T) {
	madeDate := "2024-02-01"
	explicit := "2024-03-01"
	name := "Sweet potato"

	tests := []struct {
		name       string
		patch      models.CubePatch
		wantExpiry string
		wantName   string
	}{
		{"made date recomputes", models.CubePatch{MadeDate: &madeDate}, "2024-02-15", "Carrot"},
		{"made date wins over explicit expiry", models.CubePatch{MadeDate: &madeDate, ExpiryDate: &explicit}, "2024-02-15", "Carrot"},
		{"pinned explicit expiry", models.CubePatch{MadeDate: &madeDate, ExpiryDate: &explicit, PinExpiry: true}, explicit, "Carrot"},
		{"expiry alone", models.CubePatch{ExpiryDate: &explicit}, explicit, "Carrot"},
		{"name only", models.CubePatch{Name: &name}, "2024-01-15", name},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := setupStore(t)
			cube := s.AddCube(carrot())
			if !s.UpdateCube(cube.ID, tt.patch) {
				t.Fatal("expected cube to be found")
			}
			got, _ := s.Cube(cube.ID)
			if got.ExpiryDate != tt.wantExpiry {
				t.Fatalf("expected expiry %s, got %s", tt.wantExpiry, got.ExpiryDate)
			}
			if got.Name != tt.wantName || got.Quantity != 5 {
				t.Fatalf("unexpected cube %+v", got)
			}
		})
	}
}

func TestUpdateCubeUnknownIsNoop(t *testing.T) {
	s, rec := setupStore(t)
	madeDate := "2024-02-01"
	if s.UpdateCube("missing", models.CubePatch{MadeDate: &madeDate}) {
		t.Fatal("expected no-op")
	}
	if len(rec.slots) != 0 {
		t.Fatalf("expected no notifications, got %v", rec.slots)
	}
}

func TestDeleteCubeLeavesMealsDangling(t *testing.T) {
	s, _ := setupStore(t)
	cube := s.AddCube(carrot())
	meal, _ := s.FeedCube(cube.ID, "09:00")

	if !s.DeleteCube(cube.ID) {
		t.Fatal("expected delete to find the cube")
	}
	got, _, ok := s.Meal(meal.ID)
	if !ok || got.CubeID != cube.ID {
		t.Fatalf("meal should keep its cube id, got %+v", got)
	}

	// Restoring stock to a deleted cube is a silent no-op.
	if !s.DeleteMeal(meal.ID) {
		t.Fatal("expected the meal to be deleted")
	}
	if len(s.Snapshot().Cubes) != 0 {
		t.Fatal("deleted cube must not reappear")
	}
}

func TestDeleteMealIsDateScoped(t *testing.T) {
	s, _ := setupStore(t)
	meal := s.AddMeal("2024-01-05", models.MealRecord{Title: "Rice porridge", FedTime: "07:00"})

	if s.DeleteMeal(meal.ID) {
		t.Fatal("delete must only look at the selected date")
	}
	s.SetSelectedDate("2024-01-05")
	if !s.DeleteMeal(meal.ID) {
		t.Fatal("expected delete on the meal's own date")
	}
	plan, ok := s.Plan("2024-01-05")
	if !ok || len(plan.Meals) != 0 {
		t.Fatalf("expected an empty plan to remain, got %+v (ok=%v)", plan, ok)
	}
}

func TestUpdateMealIsGlobalAndResorts(t *testing.T) {
	s, _ := setupStore(t)
	a := s.AddMeal("2024-01-07", models.MealRecord{Title: "a", FedTime: "08:00"})
	b := s.AddMeal("2024-01-07", models.MealRecord{Title: "b", FedTime: "12:00"})
	c := s.AddMeal("2024-01-07", models.MealRecord{Title: "c"})

	later := "18:30"
	if !s.UpdateMeal(a.ID, models.MealPatch{FedTime: &later}) {
		t.Fatal("expected update to find the meal on another date")
	}

	plan, _ := s.Plan("2024-01-07")
	var got []string
	for _, m := range plan.Meals {
		got = append(got, m.ID)
	}
	if diff := cmp.Diff([]string{c.ID, b.ID, a.ID}, got); diff != "" {
		t.Fatalf("meal order mismatch (-want +got):\n%s", diff)
	}
	if s.UpdateMeal("missing", models.MealPatch{FedTime: &later}) {
		t.Fatal("expected unknown meal to be a no-op")
	}
}

func TestDayPlanStaysSorted(t *testing.T) {
	s, _ := setupStore(t)
	times := []string{"19:00", "", "07:30", "12:15", "07:30", "00:05", ""}
	for i, ft := range times {
		m := s.AddMeal("2024-01-02", models.MealRecord{Title: fmt.Sprint(i), FedTime: ft})
		if i%2 == 0 {
			later := "23:59"
			s.UpdateMeal(m.ID, models.MealPatch{FedTime: &later})
		}
	}
	plan, _ := s.Plan("2024-01-02")
	fed := make([]string, len(plan.Meals))
	for i, m := range plan.Meals {
		fed[i] = m.FedTime
	}
	if !sort.StringsAreSorted(fed) {
		t.Fatalf("meals not sorted by fed time: %v", fed)
	}
	if len(s.Snapshot().Plans) != 1 {
		t.Fatal("expected exactly one plan per date")
	}
}

func TestOrdersAndPreps(t *testing.T) {
	s, rec := setupStore(t)

	o := s.AddOrder(models.OrderRecord{ItemName: "Beef", OrderDate: "2024-01-03"})
	if !s.ToggleOrder(o.ID) {
		t.Fatal("toggle order")
	}
	name := "Organic beef"
	s.UpdateOrder(o.ID, models.OrderPatch{ItemName: &name})
	got := s.Snapshot().Orders[0]
	if !got.IsReceived || got.ItemName != name {
		t.Fatalf("unexpected order %+v", got)
	}

	p := s.AddPrep(models.PreparationRecord{ItemName: "Broccoli", PrepDate: "2024-01-04"})
	s.TogglePrep(p.ID)
	s.TogglePrep(p.ID)
	if s.Snapshot().Preps[0].IsCompleted {
		t.Fatal("double toggle should leave prep incomplete")
	}

	if !s.DeleteOrder(o.ID) || !s.DeletePrep(p.ID) {
		t.Fatal("expected deletes to succeed")
	}
	if s.DeleteOrder(o.ID) || s.TogglePrep(p.ID) {
		t.Fatal("expected second operations to be no-ops")
	}

	want := []Slot{SlotOrders, SlotOrders, SlotOrders, SlotPreps, SlotPreps, SlotPreps, SlotOrders, SlotPreps}
	if diff := cmp.Diff(want, rec.slots); diff != "" {
		t.Fatalf("notified slots mismatch (-want +got):\n%s", diff)
	}
}

func TestManufacturingRecordTimestamps(t *testing.T) {
	now := fixedNow
	s, _ := setupStore(t, WithClock(func() time.Time { return now }))

	r := s.AddManufacturingRecord(models.ManufacturingRecord{Title: "Beef porridge", CubeWeight: 30, CubeCount: 12})
	if r.TotalWeight != 360 {
		t.Fatalf("expected total 360, got %d", r.TotalWeight)
	}
	if !r.CreatedAt.Equal(r.UpdatedAt) {
		t.Fatal("updatedAt must equal createdAt before the first edit")
	}

	now = now.Add(time.Hour)
	if !s.UpdateManufacturingRecord(r.ID, models.ManufacturingPatch{}) {
		t.Fatal("expected update to succeed")
	}
	got := s.Snapshot().Archive[0]
	if !got.UpdatedAt.Equal(now) || !got.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected timestamps %+v", got)
	}

	if !s.DeleteManufacturingRecord(r.ID) || len(s.Snapshot().Archive) != 0 {
		t.Fatal("expected record to be deleted")
	}
}

func TestSavedRecipes(t *testing.T) {
	s, _ := setupStore(t)
	r := s.SaveRecipe(models.SavedRecipe{Query: "beef", Text: "[Shopping list]", WeightPerCube: 20, TargetCount: 14})
	if !r.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected createdAt %v", r.CreatedAt)
	}
	if !s.DeleteRecipe(r.ID) || s.DeleteRecipe(r.ID) {
		t.Fatal("expected exactly one successful delete")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s, _ := setupStore(t)
	cube := s.AddCube(carrot())
	s.FeedCube(cube.ID, "08:00")

	snap := s.Snapshot()
	snap.Cubes[0].Quantity = 99
	snap.Plans[0].Meals[0].Ingredients[0].Name = "changed"
	snap.Statuses["x"] = models.StatusAllergic

	again := s.Snapshot()
	if again.Cubes[0].Quantity != 4 || again.Plans[0].Meals[0].Ingredients[0].Name != "Carrot" {
		t.Fatal("snapshot mutation leaked into the store")
	}
	if _, ok := again.Statuses["x"]; ok {
		t.Fatal("status map mutation leaked into the store")
	}
}

func TestNewNormalizesState(t *testing.T) {
	s := New(State{}, WithClock(func() time.Time { return fixedNow }))
	if s.WeightPerCube() != models.DefaultWeightPerCube {
		t.Fatalf("expected default weight, got %d", s.WeightPerCube())
	}
	if s.SelectedDate() != "2024-01-02" {
		t.Fatalf("expected today as selected date, got %s", s.SelectedDate())
	}
	s.SetIngredientStatus("Egg", models.StatusAllergic)
	if s.IngredientStatus("Egg") != models.StatusAllergic || s.IngredientStatus("Tofu") != models.StatusSuccess {
		t.Fatal("unexpected ingredient statuses")
	}
}
