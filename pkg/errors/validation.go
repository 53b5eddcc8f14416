package errors

// ValidationErrors accumulates field-level validation messages while a
// request is checked. Insertion order of fields is preserved so the summary
// message is always the first failure encountered.
type ValidationErrors struct {
	fields map[string][]string
	order  []string
}

// NewValidation creates an empty accumulator
func NewValidation() *ValidationErrors {
	return &ValidationErrors{
		fields: make(map[string][]string),
	}
}

// Add records a validation message for a field
func (v *ValidationErrors) Add(field, message string) {
	if _, ok := v.fields[field]; !ok {
		v.order = append(v.order, field)
	}
	v.fields[field] = append(v.fields[field], message)
}

// Empty reports whether no messages have been recorded
func (v *ValidationErrors) Empty() bool {
	return len(v.fields) == 0
}

// Err returns a VALIDATION_FAILED error carrying the accumulated field
// messages, or nil when nothing was recorded. The error message is the first
// recorded failure.
func (v *ValidationErrors) Err() error {
	if v.Empty() {
		return nil
	}
	first := v.fields[v.order[0]][0]
	return &Error{
		Code:    ErrCodeValidationFailed,
		Message: first,
		Fields:  v.fields,
	}
}
