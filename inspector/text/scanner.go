package text

import (
	"regexp"

	"github.com/viant/callflow/inspector/graph"
	"github.com/viant/callflow/inspector/info"
)

// Identifier matches function, alias and method names
const Identifier = `[A-Za-z0-9_]+`

// Scanner locates function definitions and extracts their bodies with an explicit brace counter.
// Regular expressions only match fixed-shape headers; nesting is never matched by a regex.
type Scanner struct {
	dialect *info.Dialect
	header  *regexp.Regexp
}

// NewScanner creates a scanner for the supplied dialect
func NewScanner(dialect *info.Dialect) *Scanner {
	if dialect == nil {
		dialect = info.DefaultDialect()
	}
	return &Scanner{
		dialect: dialect,
		header:  headerExpr(dialect, Identifier),
	}
}

func headerExpr(dialect *info.Dialect, name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(dialect.Keyword) + `\s+(` + name + `)\s*\(`)
}

// Scan returns all function definitions in textual order.
// A definition whose body never balances is skipped and reported in File.Malformed.
func (s *Scanner) Scan(name, text string) *graph.File {
	file := &graph.File{Name: name}
	offset := 0
	for offset < len(text) {
		loc := s.header.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			break
		}
		start := offset + loc[0]
		headerEnd := offset + loc[1]
		fnName := text[offset+loc[2] : offset+loc[3]]
		open, ok := bodyStart(text, headerEnd-1)
		if !ok {
			offset = headerEnd
			continue
		}
		end, ok := matchBrace(text, open)
		if !ok {
			file.Malformed = append(file.Malformed, fnName)
			offset = headerEnd
			continue
		}
		file.AddFunction(graph.NewFunction(fnName, text, start, end))
		offset = end
	}
	return file
}

// Find returns the first definition of the named function
func (s *Scanner) Find(text, name string) (*graph.Function, bool) {
	expr := headerExpr(s.dialect, regexp.QuoteMeta(name))
	offset := 0
	for offset < len(text) {
		loc := expr.FindStringIndex(text[offset:])
		if loc == nil {
			return nil, false
		}
		start := offset + loc[0]
		headerEnd := offset + loc[1]
		open, ok := bodyStart(text, headerEnd-1)
		if !ok {
			offset = headerEnd
			continue
		}
		end, ok := matchBrace(text, open)
		if !ok {
			offset = headerEnd
			continue
		}
		return graph.NewFunction(name, text, start, end), true
	}
	return nil, false
}

// bodyStart returns the position of the opening brace following the parameter list starting at paren
func bodyStart(text string, paren int) (int, bool) {
	depth := 0
	i := paren
	for ; i < len(text); i++ {
		if text[i] == '(' {
			depth++
		} else if text[i] == ')' {
			depth--
			if depth == 0 {
				break
			}
		}
	}
	if i >= len(text) {
		return 0, false
	}
	i++
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i < len(text) && text[i] == ':' { // return type declaration
		i++
		for i < len(text) && isTypeChar(text[i]) {
			i++
		}
	}
	if i < len(text) && text[i] == '{' {
		return i, true
	}
	return 0, false
}

// matchBrace returns the position right after the brace balancing the one at open
func matchBrace(text string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isTypeChar(c byte) bool {
	switch {
	case isSpace(c):
		return true
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', '\\', '?', '|':
		return true
	}
	return false
}
