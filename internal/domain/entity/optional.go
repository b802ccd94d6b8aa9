package entity

import "encoding/json"

// Optional is a field of a partial update. Set reports that the key was
// present in the payload; Null that it was an explicit JSON null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: v} }

func Null[T any]() Optional[T] { return Optional[T]{Set: true, Null: true} }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		var zero T
		o.Null, o.Value = true, zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// Arg is the value to bind as a query parameter (nil for null).
func (o Optional[T]) Arg() any {
	if o.Null {
		return nil
	}
	return o.Value
}

// Ptr returns nil for null, a pointer to the value otherwise.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// Present exposes the value to the request validator: ok is false
// when the field is absent or null.
func (o Optional[T]) Present() (any, bool) {
	if !o.Set || o.Null {
		return nil, false
	}
	return o.Value, true
}

// OptionalSamples lists the instantiations used in request types so the
// validator can look through them.
func OptionalSamples() []any {
	return []any{
		Optional[string]{},
		Optional[int]{},
		Optional[int64]{},
		Optional[bool]{},
		Optional[[]int64]{},
		Optional[[]string]{},
		Optional[[]Collaborator]{},
	}
}
