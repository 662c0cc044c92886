package filter

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Expr carries a Predicate through YAML and JSON documents.
// The zero Expr (no expression written) holds a nil Predicate.
type Expr struct {
	Predicate
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Expr) UnmarshalYAML(node *yaml.Node) error {
	var raw interface{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		e.Predicate = nil
		return nil
	}
	p, err := Parse(raw)
	if err != nil {
		return err
	}
	e.Predicate = p
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expr) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		e.Predicate = nil
		return nil
	}
	p, err := Parse(raw)
	if err != nil {
		return err
	}
	e.Predicate = p
	return nil
}

// MarshalJSON implements json.Marshaler.
func (e Expr) MarshalJSON() ([]byte, error) {
	if e.Predicate == nil {
		return []byte("null"), nil
	}
	return json.Marshal(e.Predicate.Expression())
}

// IsSet reports whether an expression was provided.
func (e Expr) IsSet() bool {
	return e.Predicate != nil
}
