// Package expr converts host values into DynamoDB attribute values and
// binds placeholder templates into fully-parameterized expressions.
//
// It is the core every request builder in this module sits on: values go
// in, tagged [types.AttributeValue] variants come out, and templated
// expression strings like
//
//	"SET #name = {0}, updated = {1:2006-01-02}"
//
// are rewritten with uniquely-named parameter tokens (:p0, :p1, ...)
// whose bound values accumulate in a table ready to be merged into a
// request's ExpressionAttributeValues map.
//
// # Values
//
// Conversion dispatches over a closed set of variant types implementing
// the [Value] interface: [Null], [Text], [Bool], [Int], [Uint], [Float],
// [Decimal], [Time], [Symbol], [ID], [Binary], [StringSet], [NumberSet],
// [BinarySet], [List], [Map] and the [Raw] fallback. Plain Go values are
// bridged onto the set with [ValueOf], so callers of the templated path
// can pass ordinary strings, numbers, times and slices.
//
// Sets, lists and maps are converted element-wise with the same rules
// and must not be empty: DynamoDB has no representation for an empty
// collection attribute, so conversion fails with [EmptyCollectionError]
// instead of producing a degenerate variant.
//
// # Formats
//
// An optional format string steers the textual rendering:
//
//   - [Time] with format "ttl" (any case) becomes an epoch-seconds
//     Number instead of a String; any other format is a Go time layout.
//   - Numeric variants accept fmt verb strings such as "%.2f".
//   - [ID] accepts "simple" (32 hex digits) and "urn".
//   - [Bool] and [Symbol] reject every format with [FormatError]; they
//     have no format dimension and a supplied one is a caller bug.
//
// # Templates
//
// [Binder.Bind] validates the whole template before converting anything:
// brace parity, placeholder syntax, negative indices and argument-count
// coverage are all checked up front, and every malformed fragment is
// reported at once. Conversion then runs left to right and fails fast on
// the first bad value; substitution runs right to left so replacements
// never shift the offsets of placeholders still to be spliced.
//
// Everything here is a pure computation: no I/O, no global state, no
// internal locking. One [Binder] and one [NameSequence] belong to one
// request-building session and must not be shared across goroutines.
package expr
