package request

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Unmarshal decodes a raw item into a value of type T.
func Unmarshal[T any](item map[string]types.AttributeValue) (*T, error) {
	var value T
	if err := attributevalue.UnmarshalMap(item, &value); err != nil {
		return nil, fmt.Errorf("request: unmarshal item to %T: %w", value, err)
	}
	return &value, nil
}

// UnmarshalAll decodes a slice of raw items, as returned by Query and
// Scan, into values of type T.
func UnmarshalAll[T any](items []map[string]types.AttributeValue) ([]T, error) {
	values := make([]T, len(items))
	for i, item := range items {
		if err := attributevalue.UnmarshalMap(item, &values[i]); err != nil {
			return nil, fmt.Errorf("request: unmarshal item %d to %T: %w", i, values[i], err)
		}
	}
	return values, nil
}
