package expr

import (
	"errors"
	"math"
	"math/big"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

func mustString(t *testing.T, av types.AttributeValue) string {
	t.Helper()
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		t.Fatalf("expected String attribute, got %T", av)
	}
	return s.Value
}

func mustNumber(t *testing.T, av types.AttributeValue) string {
	t.Helper()
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		t.Fatalf("expected Number attribute, got %T", av)
	}
	return n.Value
}

// --- Scalar Tests ---

func TestConvert_String(t *testing.T) {
	av, err := Convert("abc", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustString(t, av); got != "abc" {
		t.Errorf("expected 'abc', got %q", got)
	}
}

func TestConvert_StringIgnoresFormat(t *testing.T) {
	av, err := Convert("abc", "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustString(t, av); got != "abc" {
		t.Errorf("expected verbatim 'abc', got %q", got)
	}
}

func TestConvert_Nil(t *testing.T) {
	av, err := Convert(nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	null, ok := av.(*types.AttributeValueMemberNULL)
	if !ok {
		t.Fatalf("expected NULL attribute, got %T", av)
	}
	if !null.Value {
		t.Error("expected NULL attribute with Value true")
	}
}

func TestConvert_NilIgnoresFormat(t *testing.T) {
	if _, err := Convert(nil, "%d"); err != nil {
		t.Errorf("nil must always convert, got error: %v", err)
	}
}

func TestConvert_Bool(t *testing.T) {
	av, err := Convert(true, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := av.(*types.AttributeValueMemberBOOL)
	if !ok {
		t.Fatalf("expected Boolean attribute, got %T", av)
	}
	if !b.Value {
		t.Error("expected true")
	}
}

func TestConvert_BoolRejectsFormat(t *testing.T) {
	_, err := Convert(true, "x")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Format != "x" {
		t.Errorf("expected format 'x' in error, got %q", fe.Format)
	}
}

func TestConvert_SymbolRejectsFormat(t *testing.T) {
	if _, err := Convert(Symbol("ACTIVE"), "s"); err == nil {
		t.Fatal("expected FormatError for symbol with format")
	}
	av, err := Convert(Symbol("ACTIVE"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustString(t, av); got != "ACTIVE" {
		t.Errorf("expected 'ACTIVE', got %q", got)
	}
}

func TestConvert_Binary(t *testing.T) {
	av, err := Convert([]byte{0x01, 0x02}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := av.(*types.AttributeValueMemberB)
	if !ok {
		t.Fatalf("expected Binary attribute, got %T", av)
	}
	if !reflect.DeepEqual(b.Value, []byte{0x01, 0x02}) {
		t.Errorf("unexpected bytes: %v", b.Value)
	}
}

// --- Number Tests ---

func TestConvert_Numbers(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		format   string
		expected string
	}{
		{"int", 30, "", "30"},
		{"negative int", -7, "", "-7"},
		{"int64", int64(1 << 40), "", "1099511627776"},
		{"uint64 above int64", uint64(math.MaxUint64), "", "18446744073709551615"},
		{"float", 0.5, "", "0.5"},
		{"float32", float32(2.5), "", "2.5"},
		{"big int", new(big.Int).SetInt64(42), "", "42"},
		{"big float", big.NewFloat(1.25), "", "1.25"},
		{"big rat", big.NewRat(3, 4), "", "0.75"},
		{"padded int", 7, "%04d", "0007"},
		{"fixed float", 3.14159, "%.2f", "3.14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av, err := Convert(tt.value, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := mustNumber(t, av); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestConvert_NumberBadVerb(t *testing.T) {
	_, err := Convert(30, "nope")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.TypeName == "" || fe.Format != "nope" {
		t.Errorf("expected type name and format in error, got %+v", fe)
	}
}

func TestConvert_FloatNaN(t *testing.T) {
	var fe *FormatError
	if _, err := Convert(math.NaN(), ""); !errors.As(err, &fe) {
		t.Errorf("expected FormatError for NaN, got %v", err)
	}
	if _, err := Convert(math.Inf(1), ""); !errors.As(err, &fe) {
		t.Errorf("expected FormatError for +Inf, got %v", err)
	}
}

// --- Time Tests ---

func TestConvert_TimeDefault(t *testing.T) {
	ts := time.Date(2024, 3, 9, 12, 30, 45, 123456789, time.UTC)
	av, err := Convert(ts, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustString(t, av); got != "2024-03-09T12:30:45.123456789Z" {
		t.Errorf("unexpected round-trip form: %q", got)
	}
}

func TestConvert_TimeTTL(t *testing.T) {
	ts := time.Date(2024, 3, 9, 12, 30, 45, 0, time.UTC)
	for _, format := range []string{"ttl", "TTL", "Ttl"} {
		av, err := Convert(ts, format)
		if err != nil {
			t.Fatalf("format %q: unexpected error: %v", format, err)
		}
		if got := mustNumber(t, av); got != "1709987445" {
			t.Errorf("format %q: expected epoch seconds '1709987445', got %q", format, got)
		}
	}
}

func TestConvert_TimeLayout(t *testing.T) {
	ts := time.Date(2024, 3, 9, 12, 30, 45, 0, time.UTC)
	av, err := Convert(ts, "2006-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustString(t, av); got != "2024-03-09" {
		t.Errorf("expected '2024-03-09', got %q", got)
	}
}

// --- ID Tests ---

func TestConvert_ID(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	tests := []struct {
		name     string
		format   string
		expected string
	}{
		{"default", "", "550e8400-e29b-41d4-a716-446655440000"},
		{"simple", "simple", "550e8400e29b41d4a716446655440000"},
		{"urn", "urn", "urn:uuid:550e8400-e29b-41d4-a716-446655440000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av, err := Convert(id, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := mustString(t, av); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestConvert_IDBadFormat(t *testing.T) {
	var fe *FormatError
	if _, err := Convert(uuid.New(), "hex"); !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

// --- Collection Tests ---

func TestConvert_StringSet(t *testing.T) {
	av, err := Convert([]string{"a", "b"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ss, ok := av.(*types.AttributeValueMemberSS)
	if !ok {
		t.Fatalf("expected String Set attribute, got %T", av)
	}
	if !reflect.DeepEqual(ss.Value, []string{"a", "b"}) {
		t.Errorf("unexpected members: %v", ss.Value)
	}
}

func TestConvert_NumberSet(t *testing.T) {
	av, err := Convert([]int{1, 2, 3}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ns, ok := av.(*types.AttributeValueMemberNS)
	if !ok {
		t.Fatalf("expected Number Set attribute, got %T", av)
	}
	if !reflect.DeepEqual(ns.Value, []string{"1", "2", "3"}) {
		t.Errorf("unexpected members: %v", ns.Value)
	}
}

func TestConvert_NumberSetFormatAppliesToElements(t *testing.T) {
	av, err := Convert([]float64{1.005, 2.5}, "%.1f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ns := av.(*types.AttributeValueMemberNS)
	if !reflect.DeepEqual(ns.Value, []string{"1.0", "2.5"}) {
		t.Errorf("unexpected members: %v", ns.Value)
	}
}

func TestConvert_NumberSetNonNumericElement(t *testing.T) {
	var fe *FormatError
	if _, err := Convert(NumberSet{Text("x")}, ""); !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestConvert_BinarySet(t *testing.T) {
	av, err := Convert([][]byte{{0x01}, {0x02}}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := av.(*types.AttributeValueMemberBS); !ok {
		t.Fatalf("expected Binary Set attribute, got %T", av)
	}
}

func TestConvert_EmptyCollections(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string set", []string{}},
		{"number set", []int{}},
		{"binary set", [][]byte{}},
		{"list", List{}},
		{"map", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.value, "")
			var ece *EmptyCollectionError
			if !errors.As(err, &ece) {
				t.Fatalf("expected EmptyCollectionError, got %v", err)
			}
			var ce ConversionError
			if !errors.As(err, &ce) {
				t.Error("EmptyCollectionError must satisfy ConversionError")
			}
		})
	}
}

func TestConvert_List(t *testing.T) {
	av, err := Convert([]any{"a", 1, true}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, ok := av.(*types.AttributeValueMemberL)
	if !ok {
		t.Fatalf("expected List attribute, got %T", av)
	}
	if len(l.Value) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(l.Value))
	}
	if got := mustString(t, l.Value[0]); got != "a" {
		t.Errorf("element 0: expected 'a', got %q", got)
	}
	if got := mustNumber(t, l.Value[1]); got != "1" {
		t.Errorf("element 1: expected '1', got %q", got)
	}
	if _, ok := l.Value[2].(*types.AttributeValueMemberBOOL); !ok {
		t.Errorf("element 2: expected Boolean, got %T", l.Value[2])
	}
}

func TestConvert_MapRecursive(t *testing.T) {
	av, err := Convert(map[string]any{
		"name":  "Ann",
		"inner": map[string]any{"age": 30},
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		t.Fatalf("expected Map attribute, got %T", av)
	}
	inner, ok := m.Value["inner"].(*types.AttributeValueMemberM)
	if !ok {
		t.Fatalf("expected nested Map, got %T", m.Value["inner"])
	}
	if got := mustNumber(t, inner.Value["age"]); got != "30" {
		t.Errorf("expected nested '30', got %q", got)
	}
}

func TestConvert_ListElementFailurePropagates(t *testing.T) {
	_, err := Convert(List{Text("ok"), StringSet{}}, "")
	var ece *EmptyCollectionError
	if !errors.As(err, &ece) {
		t.Fatalf("expected nested EmptyCollectionError, got %v", err)
	}
}

// --- Fallback Tests ---

type stringerValue struct{}

func (stringerValue) String() string { return "stringer-form" }

type plainValue struct {
	A int
}

func TestConvert_RawStringer(t *testing.T) {
	av, err := Convert(stringerValue{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustString(t, av); got != "stringer-form" {
		t.Errorf("expected 'stringer-form', got %q", got)
	}
}

func TestConvert_RawDefault(t *testing.T) {
	av, err := Convert(plainValue{A: 1}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustString(t, av); got != "{1}" {
		t.Errorf("expected '{1}', got %q", got)
	}
}

func TestConvert_RawWithVerb(t *testing.T) {
	av, err := Convert(plainValue{A: 1}, "%+v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustString(t, av); got != "{A:1}" {
		t.Errorf("expected '{A:1}', got %q", got)
	}
}

func TestConvert_BigRatIsNumeric(t *testing.T) {
	av, err := Convert(big.NewRat(1, 3), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A rational is a number, never a "1/3" string.
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		t.Fatalf("expected Number attribute, got %#v", av)
	}
	if !strings.HasPrefix(n.Value, "0.333333") {
		t.Errorf("unexpected rendering: %q", n.Value)
	}

	again, err := Convert(big.NewRat(1, 3), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(av, again) {
		t.Errorf("conversion not deterministic: %#v vs %#v", av, again)
	}
}

type markerValue struct{}

func (markerValue) String() string { return "100%! done" }

func TestConvert_RawMarkerInValueText(t *testing.T) {
	// The value's own text contains fmt's error marker; a valid verb
	// must still convert cleanly.
	av, err := Convert(markerValue{}, "%s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustString(t, av); got != "100%! done" {
		t.Errorf("expected '100%%! done', got %q", got)
	}

	// Same value through the default Stringer path.
	av, err = Convert(markerValue{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustString(t, av); got != "100%! done" {
		t.Errorf("expected '100%%! done', got %q", got)
	}
}

type labelValue struct {
	Label string
}

func TestConvert_RawBadVerb(t *testing.T) {
	var fe *FormatError
	if _, err := Convert(labelValue{Label: "x"}, "%d"); !errors.As(err, &fe) {
		t.Fatalf("expected FormatError for mismatched verb, got %v", err)
	}
}

// --- Determinism ---

func TestConvert_Deterministic(t *testing.T) {
	values := []struct {
		name   string
		value  any
		format string
	}{
		{"string", "abc", ""},
		{"number", 3.14159, "%.3f"},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), ""},
		{"ttl", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "ttl"},
		{"set", []string{"x", "y"}, ""},
		{"map", map[string]any{"k": 1}, ""},
	}

	for _, tt := range values {
		t.Run(tt.name, func(t *testing.T) {
			first, err := Convert(tt.value, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			second, err := Convert(tt.value, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("conversion not deterministic: %#v vs %#v", first, second)
			}
		})
	}
}
