package expr

import "strconv"

// NameSequence mints the unique parameter tokens (:p0, :p1, ...) for
// one request-building session. The counter is per-instance state, so
// independent builders never collide. The zero value is ready to use.
//
// Not safe for concurrent use; one sequence belongs to one in-flight
// request build.
type NameSequence struct {
	n int
}

// Next returns the next token in the sequence: strictly increasing,
// no gaps, no reuse.
func (s *NameSequence) Next() string {
	token := ":p" + strconv.Itoa(s.n)
	s.n++
	return token
}

// Reset restores the counter to zero. Intended for deterministic tests
// only: resetting a sequence while bindings minted from earlier tokens
// are still live would hand out duplicate tokens for different values.
func (s *NameSequence) Reset() {
	s.n = 0
}

// NameEscaper maps real attribute names to substitute name tokens
// (#n0, #n1, ...) for use in expressions where the real name may be a
// reserved word. Escaping the same name twice returns the same token.
// The zero value is ready to use.
//
// This is the attribute-NAME side of expression building, orthogonal to
// the value tokens a NameSequence mints.
type NameEscaper struct {
	tokens map[string]string
	names  map[string]string
}

// Escape returns the substitute token for name, minting one on first
// use.
func (e *NameEscaper) Escape(name string) string {
	if token, ok := e.tokens[name]; ok {
		return token
	}
	if e.tokens == nil {
		e.tokens = make(map[string]string)
		e.names = make(map[string]string)
	}
	token := "#n" + strconv.Itoa(len(e.tokens))
	e.tokens[name] = token
	e.names[token] = name
	return token
}

// Names returns the token-to-name map in the shape of a request's
// ExpressionAttributeNames field. Nil when nothing was escaped.
func (e *NameEscaper) Names() map[string]string {
	if len(e.names) == 0 {
		return nil
	}
	names := make(map[string]string, len(e.names))
	for token, name := range e.names {
		names[token] = name
	}
	return names
}

// Len returns the number of distinct names escaped so far.
func (e *NameEscaper) Len() int {
	return len(e.tokens)
}
