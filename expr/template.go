package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	// anySpan matches anything brace-delimited, however malformed the
	// inside is. Used to detect spans that fail the strict grammar.
	anySpan = regexp.MustCompile(`\{[^{}]*\}`)

	// placeholder is the strict grammar: {index} or {index:format}. The
	// optional minus sign is admitted here so negative indices reach the
	// index check and are reported as such, not as malformed syntax.
	placeholder = regexp.MustCompile(`\{(-?[0-9]+)(?::([^{}]*))?\}`)

	// wholePlaceholder tests a single extracted span.
	wholePlaceholder = regexp.MustCompile(`^\{(-?[0-9]+)(?::([^{}]*))?\}$`)
)

// Binder rewrites placeholder templates into parameterized expressions,
// accumulating the token-to-value binding table across calls. One
// Binder belongs to one request-building session; the zero value is
// ready to use.
//
// Template placeholders take the form {index} or {index:format}, where
// index is a zero-based position into the Bind arguments and format is
// passed to the value conversion (see Convert).
type Binder struct {
	seq    NameSequence
	values map[string]types.AttributeValue
}

// NewBinder returns a Binder with a fresh token sequence and an empty
// binding table.
func NewBinder() *Binder {
	return &Binder{values: make(map[string]types.AttributeValue)}
}

// Bind validates template, converts the argument referenced by each
// placeholder, and returns the template rewritten with freshly minted
// parameter tokens. The (token, value) pairs accumulate in the binding
// table returned by Values.
//
// The whole template is validated before any value is converted: syntax
// problems are collected and reported together via TemplateError, an
// out-of-range index is an ArgumentCountError, and only then does
// conversion run, failing fast on the first bad value. A template with
// no placeholders is returned unchanged.
func (b *Binder) Bind(template string, args ...any) (string, error) {
	if template == "" {
		return "", &TemplateError{Reason: "empty template"}
	}
	if strings.Count(template, "{") != strings.Count(template, "}") {
		return "", &TemplateError{Reason: "unmatched braces", Fragments: []string{template}}
	}

	spans := anySpan.FindAllString(template, -1)
	if len(spans) == 0 {
		return template, nil
	}

	matches := placeholder.FindAllStringSubmatchIndex(template, -1)
	if len(matches) < len(spans) {
		var malformed []string
		for _, span := range spans {
			if !wholePlaceholder.MatchString(span) {
				malformed = append(malformed, span)
			}
		}
		return "", &TemplateError{Reason: "malformed placeholder", Fragments: malformed}
	}

	type slot struct {
		start, end int
		index      int
		format     string
	}

	slots := make([]slot, len(matches))
	var negatives []string
	maxIndex := -1
	for i, m := range matches {
		index, err := strconv.Atoi(template[m[2]:m[3]])
		if err != nil {
			// The strict grammar admits only optionally-signed digits;
			// overflow is the lone way Atoi can fail here.
			return "", &TemplateError{Reason: "malformed placeholder", Fragments: []string{template[m[0]:m[1]]}}
		}
		if index < 0 {
			negatives = append(negatives, template[m[0]:m[1]])
		}
		if index > maxIndex {
			maxIndex = index
		}
		slots[i] = slot{start: m[0], end: m[1], index: index}
		if m[4] >= 0 {
			slots[i].format = template[m[4]:m[5]]
		}
	}
	if len(negatives) > 0 {
		return "", &TemplateError{Reason: "negative placeholder index", Fragments: negatives}
	}
	if maxIndex >= len(args) {
		return "", &ArgumentCountError{MissingIndex: maxIndex, Supplied: len(args)}
	}

	// Convert left to right so tokens come out in source order; merge
	// into the table only once every placeholder converted.
	tokens := make([]string, len(slots))
	bound := make(map[string]types.AttributeValue, len(slots))
	for i, s := range slots {
		token := b.seq.Next()
		av, err := convertValue(ValueOf(args[s.index]), s.format, token)
		if err != nil {
			return "", fmt.Errorf("expr: bind %s: %w", template[s.start:s.end], err)
		}
		tokens[i] = token
		bound[token] = av
	}
	if b.values == nil {
		b.values = make(map[string]types.AttributeValue, len(bound))
	}
	for token, av := range bound {
		b.values[token] = av
	}

	// Substitute right to left so earlier splices never shift the
	// offsets of placeholders still pending.
	expr := template
	for i := len(slots) - 1; i >= 0; i-- {
		expr = expr[:slots[i].start] + tokens[i] + expr[slots[i].end:]
	}
	return expr, nil
}

// Values returns the accumulated binding table in the shape of a
// request's ExpressionAttributeValues field. Nil when nothing was
// bound. The caller owns the returned map.
func (b *Binder) Values() map[string]types.AttributeValue {
	if len(b.values) == 0 {
		return nil
	}
	values := make(map[string]types.AttributeValue, len(b.values))
	for token, av := range b.values {
		values[token] = av
	}
	return values
}

// Len returns the number of bindings accumulated so far.
func (b *Binder) Len() int {
	return len(b.values)
}
