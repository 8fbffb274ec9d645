// Package stream converts DynamoDB Streams attribute values, as
// delivered to Lambda handlers, into the SDK wire format.
//
// The Lambda events package carries its own attribute value type, so a
// handler that wants to feed stream images back into requests built
// with this module has to cross formats. FromImage and FromKey cover
// all ten attribute data types, recursively.
package stream

import (
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FromImage converts a full stream record image (NewImage, OldImage or
// Keys) into an SDK attribute value map.
func FromImage(image map[string]events.DynamoDBAttributeValue) (map[string]types.AttributeValue, error) {
	result := make(map[string]types.AttributeValue, len(image))
	for name, av := range image {
		converted, err := FromAttribute(av)
		if err != nil {
			return nil, fmt.Errorf("stream: attribute %q: %w", name, err)
		}
		result[name] = converted
	}
	return result, nil
}

// FromKey converts a stream record's Keys map. Identical to FromImage;
// the separate name mirrors how handlers read records.
func FromKey(key map[string]events.DynamoDBAttributeValue) (map[string]types.AttributeValue, error) {
	return FromImage(key)
}

// FromAttribute converts a single stream attribute value, recursing
// into lists and maps.
func FromAttribute(av events.DynamoDBAttributeValue) (types.AttributeValue, error) {
	switch av.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: av.String()}, nil
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: av.Number()}, nil
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: av.Binary()}, nil
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: av.Boolean()}, nil
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: av.IsNull()}, nil
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: av.StringSet()}, nil
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: av.NumberSet()}, nil
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: av.BinarySet()}, nil
	case events.DataTypeList:
		list := av.List()
		members := make([]types.AttributeValue, len(list))
		for i, elem := range list {
			converted, err := FromAttribute(elem)
			if err != nil {
				return nil, err
			}
			members[i] = converted
		}
		return &types.AttributeValueMemberL{Value: members}, nil
	case events.DataTypeMap:
		m := av.Map()
		members := make(map[string]types.AttributeValue, len(m))
		for key, elem := range m {
			converted, err := FromAttribute(elem)
			if err != nil {
				return nil, err
			}
			members[key] = converted
		}
		return &types.AttributeValueMemberM{Value: members}, nil
	default:
		return nil, fmt.Errorf("stream: unknown attribute data type %v", av.DataType())
	}
}
