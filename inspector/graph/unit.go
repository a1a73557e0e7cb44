package graph

// Unit represents a named blob of source text
type Unit struct {
	Name string
	Text string
}

// Units maps a module name to its source text
type Units map[string]string

// Lookup returns unit text by name
func (u Units) Lookup(name string) (string, bool) {
	if u == nil {
		return "", false
	}
	text, ok := u[name]
	return text, ok
}

// NewUnits builds a lookup table, later units replace earlier ones with the same name
func NewUnits(units ...*Unit) Units {
	var result = make(Units, len(units))
	for _, unit := range units {
		if unit == nil {
			continue
		}
		result[unit.Name] = unit.Text
	}
	return result
}
