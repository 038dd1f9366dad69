package objmap

import "fmt"

// MarshalError represents an error while serializing an instance.
type MarshalError struct {
	Field   string
	Message string
	Err     error
}

func (e *MarshalError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// FieldError records one field that failed to deserialize; the
// instance keeps that field's prior value.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
