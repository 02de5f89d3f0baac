package hyperparams

import (
	"fmt"
	"maps"
	"slices"
)

// Table maps a hyperparameter name to its value.
type Table map[string]any

func (t Table) Clone() Table {
	out := make(Table, len(t))
	maps.Copy(out, t)
	return out
}

// Merge returns a new table holding t overlaid with override. Keys present in
// override win; every other key keeps its value from t. Neither input is modified.
func (t Table) Merge(override Table) Table {
	out := t.Clone()
	maps.Copy(out, override)
	return out
}

// Union joins two tables whose key sets must be disjoint. A shared key is a
// programming error in the static parameter sets and panics.
func (t Table) Union(other Table) Table {
	out := t.Clone()
	for k, v := range other {
		if _, dup := out[k]; dup {
			panic(fmt.Sprintf("hyperparams: key %q defined in both tables", k))
		}
		out[k] = v
	}
	return out
}

func (t Table) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// Keys returns the parameter names in sorted order.
func (t Table) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}
