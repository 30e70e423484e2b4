package props

import "github.com/samber/lo"

// Merge returns a new set holding base with override applied on top.
//
// Keys present in both keep the base position and comment and take the raw
// line from override. Keys only in override are appended in override order.
// Neither input is modified.
func Merge(base, override *Properties) *Properties {
	merged := base.Clone()
	for _, e := range override.entries {
		merged.Set(e)
	}
	return merged
}

// Change describes a key whose raw line is replaced by a merge.
type Change struct {
	Key  string `json:"key"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Changes summarizes what Merge does with a pair of sets.
type Changes struct {
	// Overridden lists shared keys whose raw line differs between the sets.
	Overridden []Change `json:"overridden"`

	// Unchanged lists shared keys with identical raw lines.
	Unchanged []string `json:"unchanged"`

	// Added lists keys only present in override, in override order.
	Added []string `json:"added"`

	// Inherited lists keys only present in base, in base order.
	Inherited []string `json:"inherited"`
}

// Diff reports how Merge(base, override) relates to its inputs.
func Diff(base, override *Properties) Changes {
	changes := Changes{
		Overridden: []Change{},
		Unchanged:  []string{},
	}

	for _, e := range override.entries {
		prev, ok := base.Get(e.Key)
		if !ok {
			continue
		}
		if prev.Raw == e.Raw {
			changes.Unchanged = append(changes.Unchanged, e.Key)
			continue
		}
		changes.Overridden = append(changes.Overridden, Change{Key: e.Key, From: prev.Raw, To: e.Raw})
	}

	changes.Added = lo.Filter(override.Keys(), func(key string, _ int) bool {
		return !base.Has(key)
	})
	changes.Inherited = lo.Filter(base.Keys(), func(key string, _ int) bool {
		return !override.Has(key)
	})

	return changes
}

// Empty reports whether the merge leaves base untouched.
func (c Changes) Empty() bool {
	return len(c.Overridden) == 0 && len(c.Added) == 0
}
