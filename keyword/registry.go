package keyword

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the process-wide immutable catalog of valid block keywords.
// It is built once and shared read-only across every component, matching
// the "no mutable shared state in the core" rule: callers never add or
// remove keywords at runtime, they only read.
type Registry struct {
	byName map[string]*Keyword
	all    []*Keyword
}

// NewRegistry builds a Registry from an explicit keyword list. Most
// callers want Default instead; NewRegistry exists for tests that need a
// reduced or augmented catalog.
func NewRegistry(keywords []*Keyword) *Registry {
	r := &Registry{
		byName: make(map[string]*Keyword, len(keywords)),
		all:    keywords,
	}
	for _, kw := range keywords {
		r.byName[kw.Name] = kw
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide Registry, built once from the initial
// keyword set mandated by spec.md §4.1.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(defaultKeywords())
	})
	return defaultRegistry
}

func defaultKeywords() []*Keyword {
	kws := []*Keyword{
		{Name: "太字", HTMLTag: "strong", Category: CategoryDecoration, NestingRank: 40},
		{Name: "イタリック", HTMLTag: "em", Category: CategoryDecoration, NestingRank: 41},
		{Name: "枠線", HTMLTag: "div", CSSClass: "box", Category: CategoryContainer, NestingRank: 10},
		{
			Name: "ハイライト", HTMLTag: "div", CSSClass: "highlight", Category: CategoryContainer, NestingRank: 11,
			Attrs: []AttrSpec{{Name: "color", IsColor: true}},
		},
		{
			Name: "折りたたみ", HTMLTag: "details", Category: CategoryCollapsible, NestingRank: 5,
			Attrs: []AttrSpec{{Name: "summary"}},
		},
		{
			Name: "ネタバレ", HTMLTag: "details", CSSClass: "spoiler", Category: CategoryCollapsible, NestingRank: 5,
			Attrs: []AttrSpec{{Name: "summary"}},
		},
		{Name: "目次", HTMLTag: "nav", CSSClass: "toc", Category: CategorySpecialTOC, NestingRank: 0},
		{
			Name: "画像", HTMLTag: "img", Category: CategorySpecialImage, NestingRank: 0,
			Attrs: []AttrSpec{{Name: "alt"}, {Name: "width"}, {Name: "height"}},
		},
	}
	for level := 1; level <= 5; level++ {
		kws = append(kws, &Keyword{
			Name:        fmt.Sprintf("見出し%d", level),
			HTMLTag:     fmt.Sprintf("h%d", level),
			Category:    CategoryHeading,
			NestingRank: 20 + level,
		})
	}
	return kws
}

// Lookup finds a keyword by its exact canonical name.
func (r *Registry) Lookup(name string) (*Keyword, bool) {
	kw, ok := r.byName[name]
	return kw, ok
}

// All returns every registered keyword, in registration order.
func (r *Registry) All() []*Keyword {
	out := make([]*Keyword, len(r.all))
	copy(out, r.all)
	return out
}

// Suggest ranks the registry's keywords by Levenshtein distance to an
// unrecognized name and returns up to limit candidates, closest first,
// ties broken lexicographically by canonical name.
func (r *Registry) Suggest(unknown string, limit int) []*Keyword {
	type scored struct {
		kw   *Keyword
		dist int
	}
	scoredList := make([]scored, 0, len(r.all))
	for _, kw := range r.all {
		scoredList = append(scoredList, scored{kw, levenshtein(unknown, kw.Name)})
	}
	sort.SliceStable(scoredList, func(i, j int) bool {
		if scoredList[i].dist != scoredList[j].dist {
			return scoredList[i].dist < scoredList[j].dist
		}
		return scoredList[i].kw.Name < scoredList[j].kw.Name
	})
	if limit <= 0 || limit > len(scoredList) {
		limit = len(scoredList)
	}
	out := make([]*Keyword, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, scoredList[i].kw)
	}
	return out
}

// levenshtein computes edit distance between two rune sequences. Hand
// rolled on purpose: no library in the retrieval pack offers Levenshtein
// distance, and this is a ~20-line single-purpose algorithm with no
// ecosystem-standard package worth taking a dependency on (see
// DESIGN.md).
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
