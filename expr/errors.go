package expr

import (
	"fmt"
	"strings"
)

// TemplateError reports malformed placeholder syntax: unmatched braces,
// non-numeric indices, or negative indices. Fragments holds every
// offending span found, not just the first.
type TemplateError struct {
	Reason    string
	Fragments []string
}

func (e *TemplateError) Error() string {
	if len(e.Fragments) == 0 {
		return "expr: " + e.Reason
	}
	return fmt.Sprintf("expr: %s: %s", e.Reason, strings.Join(e.Fragments, ", "))
}

// ArgumentCountError reports a placeholder referencing an argument
// position beyond the supplied argument list.
type ArgumentCountError struct {
	// MissingIndex is the highest placeholder index with no argument.
	MissingIndex int

	// Supplied is the number of arguments that were passed.
	Supplied int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("expr: placeholder {%d} has no matching argument (%d supplied)", e.MissingIndex, e.Supplied)
}

// ConversionError is the closed error kind for failed value
// conversions. Exactly two types implement it: [EmptyCollectionError]
// and [FormatError]. Callers never see any other error from the
// conversion path.
type ConversionError interface {
	error
	conversionError()
}

// EmptyCollectionError reports an attempt to convert an empty set, list
// or map. DynamoDB cannot represent an empty collection attribute.
type EmptyCollectionError struct {
	// ElementType names the collection's declared element type.
	ElementType string

	// Token is the destination parameter token, when the conversion ran
	// inside a template bind. Empty on the direct conversion path.
	Token string
}

func (e *EmptyCollectionError) Error() string {
	msg := fmt.Sprintf("expr: empty %s collection has no attribute value representation", e.ElementType)
	if e.Token != "" {
		msg += " (parameter " + e.Token + ")"
	}
	return msg
}

func (*EmptyCollectionError) conversionError() {}

// FormatError reports a format specifier that was invalid or
// inapplicable for the value's type.
type FormatError struct {
	// TypeName is the name of the value type being converted.
	TypeName string

	// Format is the offending format string.
	Format string

	// Token is the destination parameter token, when the conversion ran
	// inside a template bind. Empty on the direct conversion path.
	Token string

	// Err is the underlying cause, if any.
	Err error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("expr: format %q is not valid for %s", e.Format, e.TypeName)
	if e.Format == "" {
		msg = "expr: cannot convert " + e.TypeName
	}
	if e.Token != "" {
		msg += " (parameter " + e.Token + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

func (*FormatError) conversionError() {}
