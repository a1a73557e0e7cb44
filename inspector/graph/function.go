package graph

// Location represents byte offsets of an element in its source unit
type Location struct {
	Start int
	End   int
}

// Function represents a function definition extracted from a source unit.
// Body spans from the definition keyword through the balancing closing brace.
type Function struct {
	Name     string
	Body     string
	Location Location
	Hash     uint64
}

// NewFunction creates a function for text[start:end]
func NewFunction(name, text string, start, end int) *Function {
	body := text[start:end]
	hash, _ := Hash([]byte(body))
	return &Function{
		Name:     name,
		Body:     body,
		Location: Location{Start: start, End: end},
		Hash:     hash,
	}
}
