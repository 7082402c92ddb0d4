// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type (
	// VarFloat64 is a type alias for Variable[float64], representing a float64 value with initialization tracking.
	VarFloat64 = Variable[float64]

	// VarBool is a type alias for Variable[bool], representing a boolean value with initialization tracking.
	VarBool = Variable[bool]

	// VarString is a type alias for Variable[string], representing a string value with initialization tracking.
	VarString = Variable[string]
)

// Variable represents a generic type wrapper that holds a value and tracks its initialization state.
type Variable[T any] struct {
	value T
	isset bool
}

// NewVariable creates and returns a new Variable instance initialized with the provided value.
func NewVariable[T any](value T) Variable[T] {
	return Variable[T]{
		isset: true,
		value: value,
	}
}

// Reset clears the value of the Variable and marks it as uninitialized.
func (v *Variable[T]) Reset() {
	var newVal T
	v.value = newVal
	v.isset = false
}

// Value retrieves the current value stored in the Variable.
func (v *Variable[T]) Value() T {
	return v.value
}

// ValueOr returns the stored value, or fallback if the Variable is not set.
func (v *Variable[T]) ValueOr(fallback T) T {
	if !v.isset {
		return fallback
	}
	return v.value
}

// Set assigns the provided value to the Variable and marks it as initialized.
func (v *Variable[T]) Set(val T) {
	v.value = val
	v.isset = true
}

// IsSet returns true if the Variable has been initialized with a value, otherwise false.
func (v *Variable[T]) IsSet() bool {
	return v.isset
}

// UnmarshalJSON never fails. A JSON value that does not decode into T, including null,
// leaves the Variable unset.
func (v *Variable[T]) UnmarshalJSON(data []byte) error {
	v.Reset()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return nil
	}
	v.Set(val)
	return nil
}

// String returns a string representation of the Variable. If uninitialized, it returns a default placeholder message.
func (v Variable[T]) String() string {
	if !v.isset {
		return "N/A"
	}
	return fmt.Sprint(v.value)
}
