package graph

// File represents a scanned source unit with its function definitions
type File struct {
	Name      string      // Unit name
	Functions []*Function // Functions in textual order
	Malformed []string    // Definitions skipped because their body never balanced

	functionMap map[string]int // Map of functions for quick lookup
}

// AddFunction adds a function to the file, the first definition of a name wins lookups
func (f *File) AddFunction(function *Function) {
	if f.functionMap == nil {
		f.functionMap = make(map[string]int)
	}
	f.Functions = append(f.Functions, function)
	if _, ok := f.functionMap[function.Name]; !ok {
		f.functionMap[function.Name] = len(f.Functions) - 1
	}
}

// LookupFunction retrieves a function by name from the file
func (f *File) LookupFunction(name string) *Function {
	if f.functionMap == nil {
		f.IndexFunctions()
	}
	if idx, ok := f.functionMap[name]; ok && idx < len(f.Functions) {
		return f.Functions[idx]
	}
	return nil
}

// HasFunction checks if a function with the given name exists in the file
func (f *File) HasFunction(name string) bool {
	return f.LookupFunction(name) != nil
}

// Names returns function names in textual order
func (f *File) Names() []string {
	var result = make([]string, 0, len(f.Functions))
	for _, function := range f.Functions {
		result = append(result, function.Name)
	}
	return result
}

func (f *File) IndexFunctions() {
	f.functionMap = make(map[string]int)
	for i, function := range f.Functions {
		if function == nil {
			continue
		}
		if _, ok := f.functionMap[function.Name]; !ok {
			f.functionMap[function.Name] = i
		}
	}
}
