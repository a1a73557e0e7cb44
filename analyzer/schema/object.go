package schema

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Document represents a raw data JSON document, members are visited in document order
type Document struct {
	root gjson.Result
}

// Parse parses a raw data document, the root has to be an object
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to decode raw data: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("failed to decode raw data: expected object")
	}
	return &Document{root: root}, nil
}

// Keys returns top level keys in document order
func (d *Document) Keys() []string {
	var result = make([]string, 0)
	for _, m := range members(d.root) {
		result = append(result, m.key)
	}
	return result
}

type member struct {
	key   string
	value gjson.Result
}

func members(object gjson.Result) []member {
	var result []member
	if !object.IsObject() {
		return result
	}
	object.ForEach(func(key, value gjson.Result) bool {
		result = append(result, member{key: key.String(), value: value})
		return true
	})
	return result
}

// lookup returns the first member with the key; keys are matched literally, not as paths
func lookup(object gjson.Result, key string) (gjson.Result, bool) {
	for _, m := range members(object) {
		if m.key == key {
			return m.value, true
		}
	}
	return gjson.Result{}, false
}

// text returns member text, numbers keep their literal form, null and missing are empty
func text(object gjson.Result, key string) string {
	value, ok := lookup(object, key)
	if !ok {
		return ""
	}
	return value.String()
}
