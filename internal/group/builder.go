package group

import (
	"sort"

	"winnow/internal/scanner"
)

// Group is one set of paths sharing a normalized hash. Members are sorted
// lexicographically and the first member is keep — a deliberate,
// deterministic policy so the same scan input always preserves the same file
// regardless of task completion order.
type Group struct {
	Hash        string
	Members     []string
	Reclaimable int64
}

// Keep returns the member retained by any disposition.
func (g Group) Keep() string {
	if len(g.Members) == 0 {
		return ""
	}
	return g.Members[0]
}

// Duplicates returns every member except keep.
func (g Group) Duplicates() []string {
	if len(g.Members) < 2 {
		return nil
	}
	return g.Members[1:]
}

// Builder collects results into an owned hash-to-members map. Skip outcomes
// never enter any group.
type Builder struct {
	members map[string][]string
	sizes   map[string]int64
}

// NewBuilder returns an empty Builder. One Builder serves one scan.
func NewBuilder() *Builder {
	return &Builder{
		members: make(map[string][]string),
		sizes:   make(map[string]int64),
	}
}

// Add consumes one result. Non-comparable outcomes are discarded.
func (b *Builder) Add(result scanner.Result) {
	if !result.Outcome.Comparable() {
		return
	}
	hash := result.Outcome.Digest()
	b.members[hash] = append(b.members[hash], result.File.Path)
	b.sizes[result.File.Path] = result.File.Size
}

// AddAll consumes a full result set.
func (b *Builder) AddAll(results []scanner.Result) {
	for _, result := range results {
		b.Add(result)
	}
}

// Groups returns every actionable group (two or more members), sorted by hash
// for stable output. Each group's members are sorted lexicographically and
// its reclaimable bytes are the sizes of all non-keep members.
func (b *Builder) Groups() []Group {
	groups := make([]Group, 0, len(b.members))
	for hash, members := range b.members {
		if len(members) < 2 {
			continue
		}
		sorted := append([]string(nil), members...)
		sort.Strings(sorted)

		var reclaimable int64
		for _, member := range sorted[1:] {
			reclaimable += b.sizes[member]
		}

		groups = append(groups, Group{
			Hash:        hash,
			Members:     sorted,
			Reclaimable: reclaimable,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Hash < groups[j].Hash
	})
	return groups
}

// TotalReclaimable sums reclaimable bytes across the given groups.
func TotalReclaimable(groups []Group) int64 {
	var total int64
	for _, g := range groups {
		total += g.Reclaimable
	}
	return total
}
