package expr

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Value is the closed set of host shapes the converter knows how to turn
// into a DynamoDB attribute value. The marker method keeps the set
// closed: every variant lives in this package, and the dispatch in
// Convert is exhaustive over it.
type Value interface {
	isValue()
}

// Null converts to the NULL variant. Formats are ignored.
type Null struct{}

// Text converts to a String attribute verbatim. Formats are ignored.
type Text string

// Bool converts to a Boolean attribute. Any supplied format is an error.
type Bool bool

// Int converts to a Number attribute.
type Int int64

// Uint converts to a Number attribute.
type Uint uint64

// Float converts to a Number attribute. NaN and infinities cannot be
// represented as DynamoDB numbers and fail conversion.
type Float float64

// Decimal converts an arbitrary-precision value to a Number attribute.
type Decimal struct {
	V *big.Float
}

// Time converts to a String attribute in RFC 3339 round-trip form, to a
// caller-supplied Go layout, or — with the "ttl" format — to a Number
// attribute holding epoch seconds.
type Time time.Time

// Symbol is the canonical name of an enumerated value and converts to a
// String attribute. Any supplied format is an error.
type Symbol string

// ID is an opaque 128-bit identifier and converts to a String
// attribute. Formats "simple" and "urn" select alternate renderings.
type ID uuid.UUID

// Binary converts to a Binary attribute. Formats are ignored.
type Binary []byte

// StringSet converts to a String Set attribute. Must not be empty.
type StringSet []string

// NumberSet converts to a Number Set attribute. Each element is
// converted with the normal rules and must yield a Number. Must not be
// empty.
type NumberSet []Value

// BinarySet converts to a Binary Set attribute. Must not be empty.
type BinarySet [][]byte

// List converts to a List attribute, element-wise. Must not be empty.
type List []Value

// Map converts to a Map attribute, value-wise. Must not be empty.
type Map map[string]Value

// Raw wraps any other Go value. With a format it is rendered through
// the fmt package; without one, fmt.Stringer is used when implemented
// and the default fmt rendering otherwise. Always yields a String
// attribute.
type Raw struct {
	V any
}

func (Null) isValue()      {}
func (Text) isValue()      {}
func (Bool) isValue()      {}
func (Int) isValue()       {}
func (Uint) isValue()      {}
func (Float) isValue()     {}
func (Decimal) isValue()   {}
func (Time) isValue()      {}
func (Symbol) isValue()    {}
func (ID) isValue()        {}
func (Binary) isValue()    {}
func (StringSet) isValue() {}
func (NumberSet) isValue() {}
func (BinarySet) isValue() {}
func (List) isValue()      {}
func (Map) isValue()       {}
func (Raw) isValue()       {}

// ValueOf bridges a plain Go value onto the Value set. A Value passes
// through unchanged; anything without a dedicated variant lands in Raw.
func ValueOf(v any) Value {
	switch v := v.(type) {
	case nil:
		return Null{}
	case Value:
		return v
	case string:
		return Text(v)
	case bool:
		return Bool(v)
	case int:
		return Int(v)
	case int8:
		return Int(v)
	case int16:
		return Int(v)
	case int32:
		return Int(v)
	case int64:
		return Int(v)
	case uint:
		return Uint(v)
	case uint8:
		return Uint(v)
	case uint16:
		return Uint(v)
	case uint32:
		return Uint(v)
	case uint64:
		return Uint(v)
	case float32:
		return Float(v)
	case float64:
		return Float(v)
	case *big.Int:
		return Decimal{V: new(big.Float).SetInt(v)}
	case *big.Float:
		return Decimal{V: v}
	case *big.Rat:
		return Decimal{V: new(big.Float).SetRat(v)}
	case time.Time:
		return Time(v)
	case uuid.UUID:
		return ID(v)
	case []byte:
		return Binary(v)
	case [][]byte:
		return BinarySet(v)
	case []string:
		return StringSet(v)
	case []int:
		return numberSetOf(v, func(e int) Value { return Int(e) })
	case []int64:
		return numberSetOf(v, func(e int64) Value { return Int(e) })
	case []float64:
		return numberSetOf(v, func(e float64) Value { return Float(e) })
	case []Value:
		return List(v)
	case []any:
		elems := make(List, len(v))
		for i, e := range v {
			elems[i] = ValueOf(e)
		}
		return elems
	case map[string]Value:
		return Map(v)
	case map[string]any:
		m := make(Map, len(v))
		for k, e := range v {
			m[k] = ValueOf(e)
		}
		return m
	default:
		return Raw{V: v}
	}
}

func numberSetOf[E any](elems []E, wrap func(E) Value) NumberSet {
	set := make(NumberSet, len(elems))
	for i, e := range elems {
		set[i] = wrap(e)
	}
	return set
}
