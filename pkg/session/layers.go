package session

import (
	"context"
	"fmt"
	"slices"

	prefs "github.com/goliatone/go-preferences"
)

// scopeRank orders scopes; higher ranks override lower ones.
var scopeRank = map[string]int{
	"system": 1,
	"tenant": 2,
	"org":    3,
	"team":   4,
	"user":   5,
}

// OrderRefs returns refs from strongest to weakest scope, dropping refs without
// a valid identifier and duplicates. Peers keep their relative order.
func OrderRefs(refs ...Ref) []Ref {
	ordered := make([]Ref, 0, len(refs))
	seen := map[string]struct{}{}
	for _, ref := range refs {
		id, err := ref.Identifier()
		if err != nil {
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, ref)
	}
	slices.SortStableFunc(ordered, func(a, b Ref) int {
		return scopeRank[b.Scope] - scopeRank[a.Scope]
	})
	return ordered
}

// MergeSnapshots composes snapshots ordered from strongest to weakest: a value
// from a stronger layer wins, weaker layers fill missing names.
func MergeSnapshots(layers ...Snapshot) Snapshot {
	merged := Snapshot{}
	for i := len(layers) - 1; i >= 0; i-- {
		for name, value := range layers[i] {
			merged[name] = value
		}
	}
	return merged
}

// LayeredResult reports what RestoreLayered applied.
type LayeredResult struct {
	// Sources maps each applied name to the identifier of the layer that won.
	Sources map[string]string
	Layers  []Ref
	Unknown []string
}

// RestoreLayered loads every ref, merges the snapshots found, applies the
// result to container and refreshes dependents once. Missing snapshots are
// skipped; a load error aborts before the container is touched.
func (s Session) RestoreLayered(ctx context.Context, container *prefs.Container, refs ...Ref) (LayeredResult, error) {
	if s.Store == nil {
		return LayeredResult{}, fmt.Errorf("session: store is required")
	}
	if container == nil {
		return LayeredResult{}, fmt.Errorf("session: container is required")
	}

	result := LayeredResult{Sources: map[string]string{}}
	var layers []Snapshot
	for _, ref := range OrderRefs(refs...) {
		snapshot, _, ok, err := s.Store.Load(ctx, ref)
		if err != nil {
			return LayeredResult{}, fmt.Errorf("session: load %q for scope %q: %w", ref.Domain, ref.Scope, err)
		}
		if !ok {
			continue
		}
		id, _ := ref.Identifier()
		for name := range snapshot {
			if _, claimed := result.Sources[name]; !claimed {
				result.Sources[name] = id
			}
		}
		layers = append(layers, snapshot)
		result.Layers = append(result.Layers, ref)
	}
	if len(layers) == 0 {
		return result, nil
	}

	result.Unknown = container.Apply(MergeSnapshots(layers...))
	for _, name := range result.Unknown {
		delete(result.Sources, name)
	}
	if err := container.Refresh(); err != nil {
		return result, fmt.Errorf("session: refresh: %w", err)
	}
	return result, nil
}
