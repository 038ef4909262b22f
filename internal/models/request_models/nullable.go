package request_models

import "encoding/json"

// Nullable tells an omitted JSON field apart from an explicit null.
// Set is true whenever the key was present.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func Present[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}
