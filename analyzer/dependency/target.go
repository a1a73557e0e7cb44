package dependency

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SelfName is the engine name of calls within the same unit
const SelfName = "Self"

type Kind int

const (
	KindSelf Kind = iota
	KindModule
)

// Target identifies callee owner: the current unit (Self) or a named module
type Target struct {
	Kind   Kind
	Module string
}

// Self returns target for calls within the same unit
func Self() Target {
	return Target{Kind: KindSelf}
}

// Module returns target for calls through an alias bound to the named module
func Module(name string) Target {
	return Target{Kind: KindModule, Module: name}
}

func (t Target) IsSelf() bool {
	return t.Kind == KindSelf
}

// Name returns engine name
func (t Target) Name() string {
	if t.Kind == KindSelf {
		return SelfName
	}
	return t.Module
}

func (t Target) String() string {
	return t.Name()
}

// ParseTarget converts engine name to target
func ParseTarget(name string) Target {
	if name == SelfName {
		return Self()
	}
	return Module(name)
}

func (t Target) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Name())
}

func (t *Target) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("invalid engine name: %w", err)
	}
	*t = ParseTarget(name)
	return nil
}

func (t Target) MarshalYAML() (interface{}, error) {
	return t.Name(), nil
}

func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	*t = ParseTarget(name)
	return nil
}
