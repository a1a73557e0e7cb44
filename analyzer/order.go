package analyzer

import (
	"sort"

	"github.com/viant/callflow/analyzer/dependency"
)

// NumberedSite represents a call site with its call number
type NumberedSite struct {
	*dependency.CallSite
	Number int
}

// CallOrder represents dependencies ordered by first call occurrence
type CallOrder struct {
	Dependencies []*dependency.Dependency
	Sites        []*NumberedSite
	Numbers      map[dependency.Key]int // First call number of each dependency
}

// Number returns the first call number of the dependency
func (o *CallOrder) Number(key dependency.Key) (int, bool) {
	number, ok := o.Numbers[key]
	return number, ok
}

// Orderer computes the textual call order of function dependencies
type Orderer struct {
	extractor *Extractor
}

// NewOrderer creates an orderer
func NewOrderer(extractor *Extractor) *Orderer {
	return &Orderer{extractor: extractor}
}

// Order numbers every call site of the supplied dependencies from 1 in left to right order and
// reorders dependencies by first occurrence; dependencies without a call site keep supplied order at the end
func (o *Orderer) Order(body string, deps []*dependency.Dependency) *CallOrder {
	var index = make(map[dependency.Key]int, len(deps))
	for i, dep := range deps {
		if _, ok := index[dep.Key()]; !ok {
			index[dep.Key()] = i
		}
	}
	type candidate struct {
		site *dependency.CallSite
		dep  int
	}
	var candidates []candidate
	for _, site := range o.extractor.matches(body, o.extractor.Aliases(body)) {
		if i, ok := index[site.Key()]; ok {
			candidates = append(candidates, candidate{site: site, dep: i})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].site.Offset != candidates[j].site.Offset {
			return candidates[i].site.Offset < candidates[j].site.Offset
		}
		return candidates[i].dep < candidates[j].dep
	})

	ret := &CallOrder{
		Dependencies: make([]*dependency.Dependency, 0, len(deps)),
		Numbers:      make(map[dependency.Key]int, len(deps)),
	}
	emitted := make(map[dependency.Key]bool, len(deps))
	for i, item := range candidates {
		number := i + 1
		ret.Sites = append(ret.Sites, &NumberedSite{CallSite: item.site, Number: number})
		key := item.site.Key()
		if _, ok := ret.Numbers[key]; !ok {
			ret.Numbers[key] = number
		}
		if !emitted[key] {
			emitted[key] = true
			ret.Dependencies = append(ret.Dependencies, deps[item.dep])
		}
	}
	for _, dep := range deps {
		if emitted[dep.Key()] {
			continue
		}
		emitted[dep.Key()] = true
		ret.Dependencies = append(ret.Dependencies, dep)
	}
	return ret
}
