package dependency

// CallSite represents a textual call occurrence; Offset is the byte index of the match in the body
type CallSite struct {
	Target Target
	Alias  string // Local variable used for module calls, empty for self calls
	Method string
	Offset int
}

// Key returns dedup key of the call site
func (c *CallSite) Key() Key {
	return Key{Target: c.Target, Method: c.Method}
}

// Key identifies a dependency
type Key struct {
	Target Target
	Method string
}

func (k Key) String() string {
	return k.Target.Name() + "." + k.Method
}

// Dependency represents a callable reached from a function; Code is nil when the body is unavailable
type Dependency struct {
	Target Target  `json:"engineName" yaml:"engineName"`
	Method string  `json:"methodName" yaml:"methodName"`
	Code   *string `json:"code" yaml:"code"`
}

// Key returns dependency key
func (d *Dependency) Key() Key {
	return Key{Target: d.Target, Method: d.Method}
}

// HasCode returns true if dependency body was resolved
func (d *Dependency) HasCode() bool {
	return d.Code != nil
}

// Clone returns a shallow copy
func (d *Dependency) Clone() *Dependency {
	ret := *d
	return &ret
}

// WithCode returns a copy with code set
func (d *Dependency) WithCode(code string) *Dependency {
	ret := d.Clone()
	ret.Code = &code
	return ret
}
