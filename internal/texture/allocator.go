package texture

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// UnknownTokenKey is the legend key recorded for face lines whose texture
// token is empty after normalization.
const UnknownTokenKey = "unknown"

// Allocator hands out sequential placeholder identifiers, one per distinct
// normalized token, stable across repeated lookups within one conversion.
type Allocator struct {
	prefix string
	ids    map[string]string
	order  []string
}

// NewAllocator creates an Allocator issuing "<prefix>/<n>" identifiers.
func NewAllocator(prefix string) *Allocator {
	return &Allocator{prefix: prefix, ids: make(map[string]string)}
}

// Identifier returns the placeholder for token, allocating the next number
// on first sight. An empty token is pinned to "<prefix>/1" and recorded in
// the legend under the unknown sentinel key.
func (a *Allocator) Identifier(token string) string {
	if token == "" {
		id := a.prefix + "/1"
		if _, seen := a.ids[UnknownTokenKey]; !seen {
			a.ids[UnknownTokenKey] = id
			a.order = append(a.order, UnknownTokenKey)
		}
		return id
	}
	if id, seen := a.ids[token]; seen {
		return id
	}
	id := fmt.Sprintf("%s/%d", a.prefix, len(a.ids)+1)
	a.ids[token] = id
	a.order = append(a.order, token)
	return id
}

// Len reports how many distinct tokens hold placeholders.
func (a *Allocator) Len() int {
	return len(a.ids)
}

// LegendEntry pairs a placeholder identifier with the original token it
// replaced.
type LegendEntry struct {
	Placeholder string
	Original    string
}

// Legend returns the full placeholder table sorted by the numeric suffix of
// the identifier. The sort is stable so a pinned "<prefix>/1" duplicate keeps
// first-seen order.
func (a *Allocator) Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(a.order))
	for _, token := range a.order {
		entries = append(entries, LegendEntry{Placeholder: a.ids[token], Original: token})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return numericSuffix(entries[i].Placeholder) < numericSuffix(entries[j].Placeholder)
	})
	return entries
}

// numericSuffix extracts the trailing number of an identifier for legend
// ordering, zero when absent.
func numericSuffix(id string) int {
	idx := strings.LastIndexByte(id, '/')
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
