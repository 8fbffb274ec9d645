package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ttlFormat redirects a Time conversion to an epoch-seconds Number.
const ttlFormat = "ttl"

// Convert turns a single host value into its DynamoDB attribute value.
// The value is bridged through ValueOf, so both Value variants and
// plain Go values are accepted. format is optional; pass "" for the
// default rendering of the value's type.
//
// Failures are always one of the two ConversionError kinds:
// EmptyCollectionError for empty sets/lists/maps, FormatError for an
// invalid or inapplicable format.
func Convert(v any, format string) (types.AttributeValue, error) {
	return convertValue(ValueOf(v), format, "")
}

// convertValue is the full dispatch. token is the destination parameter
// token when converting inside a template bind; it travels into
// conversion errors so callers can point back at the failing
// placeholder.
func convertValue(v Value, format, token string) (types.AttributeValue, error) {
	switch v := v.(type) {
	case nil, Null:
		return &types.AttributeValueMemberNULL{Value: true}, nil

	case StringSet:
		if len(v) == 0 {
			return nil, &EmptyCollectionError{ElementType: "string", Token: token}
		}
		return &types.AttributeValueMemberSS{Value: append([]string(nil), v...)}, nil

	case NumberSet:
		if len(v) == 0 {
			return nil, &EmptyCollectionError{ElementType: "number", Token: token}
		}
		members := make([]string, len(v))
		for i, elem := range v {
			av, err := convertValue(elem, format, token)
			if err != nil {
				return nil, err
			}
			n, ok := av.(*types.AttributeValueMemberN)
			if !ok {
				return nil, &FormatError{
					TypeName: typeName(elem),
					Format:   format,
					Token:    token,
					Err:      errors.New("number set element is not numeric"),
				}
			}
			members[i] = n.Value
		}
		return &types.AttributeValueMemberNS{Value: members}, nil

	case BinarySet:
		if len(v) == 0 {
			return nil, &EmptyCollectionError{ElementType: "binary", Token: token}
		}
		members := make([][]byte, len(v))
		for i, b := range v {
			members[i] = append([]byte(nil), b...)
		}
		return &types.AttributeValueMemberBS{Value: members}, nil

	case List:
		if len(v) == 0 {
			return nil, &EmptyCollectionError{ElementType: "any", Token: token}
		}
		members := make([]types.AttributeValue, len(v))
		for i, elem := range v {
			av, err := convertValue(elem, format, token)
			if err != nil {
				return nil, err
			}
			members[i] = av
		}
		return &types.AttributeValueMemberL{Value: members}, nil

	case Map:
		if len(v) == 0 {
			return nil, &EmptyCollectionError{ElementType: "any", Token: token}
		}
		members := make(map[string]types.AttributeValue, len(v))
		for key, elem := range v {
			av, err := convertValue(elem, format, token)
			if err != nil {
				return nil, err
			}
			members[key] = av
		}
		return &types.AttributeValueMemberM{Value: members}, nil

	case Text:
		return &types.AttributeValueMemberS{Value: string(v)}, nil

	case Binary:
		return &types.AttributeValueMemberB{Value: append([]byte(nil), v...)}, nil

	case Time:
		t := time.Time(v)
		switch {
		case strings.EqualFold(format, ttlFormat):
			return &types.AttributeValueMemberN{Value: strconv.FormatInt(t.Unix(), 10)}, nil
		case format == "":
			return &types.AttributeValueMemberS{Value: t.Format(time.RFC3339Nano)}, nil
		default:
			return &types.AttributeValueMemberS{Value: t.Format(format)}, nil
		}

	case Bool:
		if format != "" {
			return nil, &FormatError{TypeName: typeName(v), Format: format, Token: token}
		}
		return &types.AttributeValueMemberBOOL{Value: bool(v)}, nil

	case Int:
		if format == "" {
			return &types.AttributeValueMemberN{Value: strconv.FormatInt(int64(v), 10)}, nil
		}
		return formatNumber(int64(v), format, typeName(v), token)

	case Uint:
		if format == "" {
			return &types.AttributeValueMemberN{Value: strconv.FormatUint(uint64(v), 10)}, nil
		}
		return formatNumber(uint64(v), format, typeName(v), token)

	case Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &FormatError{
				TypeName: typeName(v),
				Format:   format,
				Token:    token,
				Err:      errors.New("NaN and infinities have no number representation"),
			}
		}
		if format == "" {
			return &types.AttributeValueMemberN{Value: strconv.FormatFloat(f, 'f', -1, 64)}, nil
		}
		return formatNumber(f, format, typeName(v), token)

	case Decimal:
		if v.V == nil {
			return nil, &FormatError{
				TypeName: typeName(v),
				Format:   format,
				Token:    token,
				Err:      errors.New("nil decimal"),
			}
		}
		if format == "" {
			return &types.AttributeValueMemberN{Value: v.V.Text('f', -1)}, nil
		}
		return formatNumber(v.V, format, typeName(v), token)

	case Symbol:
		if format != "" {
			return nil, &FormatError{TypeName: typeName(v), Format: format, Token: token}
		}
		return &types.AttributeValueMemberS{Value: string(v)}, nil

	case ID:
		u := uuid.UUID(v)
		switch {
		case format == "":
			return &types.AttributeValueMemberS{Value: u.String()}, nil
		case strings.EqualFold(format, "simple"):
			return &types.AttributeValueMemberS{Value: strings.ReplaceAll(u.String(), "-", "")}, nil
		case strings.EqualFold(format, "urn"):
			return &types.AttributeValueMemberS{Value: u.URN()}, nil
		default:
			return nil, &FormatError{TypeName: typeName(v), Format: format, Token: token}
		}

	case Raw:
		if v.V == nil {
			return nil, &FormatError{
				TypeName: typeName(v),
				Format:   format,
				Token:    token,
				Err:      errors.New("nil value"),
			}
		}
		if format != "" {
			rendered := fmt.Sprintf(format, v.V)
			if badVerb(rendered, v.V) {
				return nil, &FormatError{TypeName: typeName(v.V), Format: format, Token: token}
			}
			return &types.AttributeValueMemberS{Value: rendered}, nil
		}
		if s, ok := v.V.(fmt.Stringer); ok {
			return &types.AttributeValueMemberS{Value: s.String()}, nil
		}
		return &types.AttributeValueMemberS{Value: fmt.Sprint(v.V)}, nil

	default:
		// Unreachable: the Value set is closed.
		return nil, &FormatError{TypeName: typeName(v), Format: format, Token: token}
	}
}

// formatNumber renders a numeric value through a fmt verb string. fmt
// never fails outright; it embeds a "%!" marker in the output instead,
// which is how an invalid or mismatched verb is detected here.
func formatNumber(v any, format, name, token string) (types.AttributeValue, error) {
	rendered := fmt.Sprintf(format, v)
	if badVerb(rendered, v) {
		return nil, &FormatError{TypeName: name, Format: format, Token: token}
	}
	return &types.AttributeValueMemberN{Value: rendered}, nil
}

// badVerb reports whether formatting v introduced a fmt error marker:
// a bad or mismatched verb, an extra operand, or a panicking String or
// Format method. The value's own text may legitimately contain "%!",
// so the rendering is only bad when it carries more markers than the
// value's default rendering does.
func badVerb(rendered string, v any) bool {
	if strings.Contains(rendered, "%!(PANIC") {
		return true
	}
	if !strings.Contains(rendered, "%!") {
		return false
	}
	return strings.Count(rendered, "%!") > strings.Count(fmt.Sprint(v), "%!")
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
