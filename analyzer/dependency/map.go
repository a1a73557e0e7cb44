package dependency

// Entry represents a function with its dependencies
type Entry struct {
	FunctionName string        `json:"functionName" yaml:"functionName"`
	Code         string        `json:"code" yaml:"code"`
	Dependencies []*Dependency `json:"dependencies" yaml:"dependencies"`
}

// Partition splits dependencies into self and module lanes, preserving order
func (e *Entry) Partition() (self []*Dependency, modules []*Dependency) {
	for _, dep := range e.Dependencies {
		if dep.Target.IsSelf() {
			self = append(self, dep)
			continue
		}
		modules = append(modules, dep)
	}
	return self, modules
}

// Map represents function dependencies in source order
type Map []*Entry

// Lookup returns entry by function name
func (m Map) Lookup(name string) *Entry {
	for _, entry := range m {
		if entry.FunctionName == name {
			return entry
		}
	}
	return nil
}

// Names returns function names
func (m Map) Names() []string {
	var result = make([]string, 0, len(m))
	for _, entry := range m {
		result = append(result, entry.FunctionName)
	}
	return result
}

// Payload represents the dependency map response
type Payload struct {
	RelevantFunctions Map `json:"relevantFunctions" yaml:"relevantFunctions"`
}
