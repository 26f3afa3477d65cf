// Package persistence loads and saves the store's slots as JSON blobs on a
// pluggable backend. Loading fails soft: anything unreadable falls back to
// the slot's default. Saving is best-effort: failures are logged, not returned.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/chrisdamba/weaning/internal/logger"
	"github.com/chrisdamba/weaning/internal/store"
)

// ErrNotFound is returned by a Backend for a key that was never written.
var ErrNotFound = errors.New("persistence: key not found")

// Backend stores opaque blobs by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}

// Keys maps each slot to its storage key.
var Keys = map[store.Slot]string{
	store.SlotPlans:    "baby_food_plans_v1",
	store.SlotCubes:    "baby_food_cubes_v1",
	store.SlotOrders:   "baby_food_orders_v1",
	store.SlotPreps:    "baby_food_preps_v1",
	store.SlotArchive:  "baby_food_archive_v1",
	store.SlotStatuses: "baby_food_statuses_v1",
	store.SlotWeight:   "baby_food_weight_v1",
	store.SlotRecipes:  "baby_food_recipes_v1",
}

// Compile-time interface check.
var _ store.Observer = (*Adapter)(nil)

type Adapter struct {
	backend Backend
	log     *logger.Logger
	timeout time.Duration
}

func NewAdapter(backend Backend, log *logger.Logger) *Adapter {
	return &Adapter{backend: backend, log: log, timeout: 10 * time.Second}
}

func (a *Adapter) Backend() Backend { return a.backend }

func (a *Adapter) Close() error { return a.backend.Close() }

// Load decodes the slot into dst. On any failure dst is left untouched,
// which callers use to keep their default value.
func (a *Adapter) Load(ctx context.Context, slot store.Slot, dst any) bool {
	key := Keys[slot]
	data, err := a.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		a.log.Debug("slot %s not stored yet, using default", key)
		return false
	}
	if err != nil {
		a.log.Warn("error loading %s: %v", key, err)
		return false
	}
	if err := decode(data, dst); err != nil {
		a.log.Warn("error decoding %s: %v", key, err)
		return false
	}
	return true
}

// decode unmarshals into a scratch value first so a half-decoded blob never
// reaches dst.
func decode(data []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", dst)
	}
	scratch := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(scratch.Elem())
	return nil
}

// LoadState reads every slot, keeping defaults for those that are missing
// or unreadable.
func (a *Adapter) LoadState(ctx context.Context, defaultWeight int) store.State {
	state := store.DefaultState()
	if defaultWeight > 0 {
		state.WeightPerCube = defaultWeight
	}
	a.Load(ctx, store.SlotPlans, &state.Plans)
	a.Load(ctx, store.SlotCubes, &state.Cubes)
	a.Load(ctx, store.SlotOrders, &state.Orders)
	a.Load(ctx, store.SlotPreps, &state.Preps)
	a.Load(ctx, store.SlotArchive, &state.Archive)
	a.Load(ctx, store.SlotStatuses, &state.Statuses)
	a.Load(ctx, store.SlotWeight, &state.WeightPerCube)
	a.Load(ctx, store.SlotRecipes, &state.Recipes)
	return state
}

// Save writes one slot. Errors are logged and swallowed.
func (a *Adapter) Save(ctx context.Context, slot store.Slot, value any) {
	key, ok := Keys[slot]
	if !ok {
		a.log.Warn("unknown slot %q, not saved", slot)
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		a.log.Error("error encoding %s: %v", key, err)
		return
	}
	if err := a.backend.Put(ctx, key, data); err != nil {
		a.log.Error("error saving %s: %v", key, err)
		return
	}
	a.log.Debug("saved %s (%d bytes)", key, len(data))
}

// Changed implements store.Observer.
func (a *Adapter) Changed(slot store.Slot, value any) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	a.Save(ctx, slot, value)
}
