package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/viant/callflow/analyzer/dependency"
	"github.com/viant/callflow/inspector/graph"
	"github.com/viant/callflow/inspector/info"
	"github.com/viant/callflow/inspector/text"
)

// Extractor discovers module aliases and call sites within one function body
type Extractor struct {
	dialect    *info.Dialect
	alias      *regexp.Regexp
	moduleCall *regexp.Regexp
	selfCall   *regexp.Regexp
}

// NewExtractor creates an extractor for the supplied dialect
func NewExtractor(dialect *info.Dialect) *Extractor {
	if dialect == nil {
		dialect = info.DefaultDialect()
	}
	dialect.Init()
	sigil := regexp.QuoteMeta(dialect.Sigil)
	accessors := alternation(dialect.Accessors, false)
	return &Extractor{
		dialect:    dialect,
		alias:      regexp.MustCompile(sigil + `(` + text.Identifier + `)\s*=\s*` + alternation(dialect.Loaders, true) + `\s*\(\s*["'](` + text.Identifier + `)["']`),
		moduleCall: regexp.MustCompile(sigil + `(` + text.Identifier + `)` + accessors + `(` + text.Identifier + `)\s*\(`),
		selfCall:   regexp.MustCompile(alternation(dialect.SelfReceivers, true) + accessors + `(` + text.Identifier + `)\s*\(`),
	}
}

// alternation builds non capturing group, words get a leading boundary
func alternation(values []string, boundary bool) string {
	var items = make([]string, 0, len(values))
	for _, value := range values {
		item := regexp.QuoteMeta(value)
		if boundary && value != "" && isWordChar(value[0]) {
			item = `\b` + item
		}
		items = append(items, item)
	}
	return `(?:` + strings.Join(items, "|") + `)`
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Aliases returns local alias to module bindings, later bindings overwrite earlier ones.
// The Self engine name is reserved for calls within the unit, a module with that name is never bound.
func (e *Extractor) Aliases(body string) map[string]string {
	var result = map[string]string{}
	for _, match := range e.alias.FindAllStringSubmatch(body, -1) {
		if match[2] == dependency.SelfName {
			delete(result, match[1])
			continue
		}
		result[match[1]] = match[2]
	}
	return result
}

// matches returns all call shaped occurrences: module calls through bound aliases and self calls
func (e *Extractor) matches(body string, aliases map[string]string) []*dependency.CallSite {
	var result []*dependency.CallSite
	for _, loc := range e.moduleCall.FindAllStringSubmatchIndex(body, -1) {
		alias := body[loc[2]:loc[3]]
		module, ok := aliases[alias]
		if !ok {
			continue
		}
		result = append(result, &dependency.CallSite{
			Target: dependency.Module(module),
			Alias:  alias,
			Method: body[loc[4]:loc[5]],
			Offset: loc[0],
		})
	}
	for _, loc := range e.selfCall.FindAllStringSubmatchIndex(body, -1) {
		if e.isVariable(body, loc[0]) || e.isMember(body, loc[0]) {
			continue
		}
		result = append(result, &dependency.CallSite{
			Target: dependency.Self(),
			Method: body[loc[2]:loc[3]],
			Offset: loc[0],
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Offset < result[j].Offset
	})
	return result
}

// isVariable returns true when a bare receiver, i.e. self, is really a variable like $self
func (e *Extractor) isVariable(body string, offset int) bool {
	sigil := e.dialect.Sigil
	return sigil != "" && offset >= len(sigil) && body[offset-len(sigil):offset] == sigil
}

// isMember returns true when a receiver is a property in an access chain, i.e. $this->config->self->x(
func (e *Extractor) isMember(body string, offset int) bool {
	prefix := strings.TrimRight(body[:offset], " \t\r\n")
	for _, accessor := range e.dialect.Accessors {
		if accessor != "" && strings.HasSuffix(prefix, accessor) {
			return true
		}
	}
	return false
}

// CallSites returns recognized call sites in textual order.
// Module calls through unbound aliases are discarded; self calls are kept only when
// they name another function known to the unit.
func (e *Extractor) CallSites(body string, aliases map[string]string, known func(name string) bool, self string) []*dependency.CallSite {
	var result []*dependency.CallSite
	for _, site := range e.matches(body, aliases) {
		if site.Target.IsSelf() && (site.Method == self || !known(site.Method)) {
			continue
		}
		result = append(result, site)
	}
	return result
}

// Dependencies returns deduplicated function dependencies in first occurrence order,
// self dependencies carry the sibling body
func (e *Extractor) Dependencies(function *graph.Function, file *graph.File) []*dependency.Dependency {
	aliases := e.Aliases(function.Body)
	sites := e.CallSites(function.Body, aliases, file.HasFunction, function.Name)
	var result []*dependency.Dependency
	var seen = map[dependency.Key]bool{}
	for _, site := range sites {
		key := site.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		dep := &dependency.Dependency{Target: site.Target, Method: site.Method}
		if site.Target.IsSelf() {
			if sibling := file.LookupFunction(site.Method); sibling != nil {
				body := sibling.Body
				dep.Code = &body
			}
		}
		result = append(result, dep)
	}
	return result
}
