package domain

import (
	"sort"
	"strings"
)

// Messages shared by the request validator and the services.
const (
	MsgNotBlank     = "This value should not be blank."
	MsgInvalid      = "This value is not valid."
	MsgInvalidEmail = "This value is not a valid email address."
	MsgAlreadyUsed  = "This value is already used."
)

// FieldErrors maps a field path (dotted for nested fields) to its messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// OwnErrorsKey holds the messages of a field that also has nested fields.
const OwnErrorsKey = "_errors"

// Tree expands dotted paths into nested objects:
// {"address.city": [...]} becomes {"address": {"city": [...]}}.
// When "address" has messages of its own they are kept under OwnErrorsKey.
func (fe FieldErrors) Tree() map[string]any {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := make(map[string]any, len(fe))
	for _, k := range keys {
		parts := strings.Split(k, ".")
		node := root
		for _, p := range parts[:len(parts)-1] {
			switch cur := node[p].(type) {
			case map[string]any:
				node = cur
			case []string:
				child := map[string]any{OwnErrorsKey: cur}
				node[p] = child
				node = child
			default:
				child := make(map[string]any)
				node[p] = child
				node = child
			}
		}
		leaf := parts[len(parts)-1]
		if nested, ok := node[leaf].(map[string]any); ok {
			own, _ := nested[OwnErrorsKey].([]string)
			nested[OwnErrorsKey] = append(own, fe[k]...)
			continue
		}
		node[leaf] = fe[k]
	}
	return root
}

// ValidationError carries every constraint violation found in a submitted document.
type ValidationError struct {
	Fields FieldErrors
}

func NewValidationError(field, msg string) *ValidationError {
	fe := FieldErrors{}
	fe.Add(field, msg)
	return &ValidationError{Fields: fe}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
