package stream

import (
	"reflect"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestFromAttribute_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		input    events.DynamoDBAttributeValue
		expected types.AttributeValue
	}{
		{
			"string",
			events.NewStringAttribute("abc"),
			&types.AttributeValueMemberS{Value: "abc"},
		},
		{
			"number",
			events.NewNumberAttribute("30"),
			&types.AttributeValueMemberN{Value: "30"},
		},
		{
			"binary",
			events.NewBinaryAttribute([]byte{0x01}),
			&types.AttributeValueMemberB{Value: []byte{0x01}},
		},
		{
			"boolean",
			events.NewBooleanAttribute(true),
			&types.AttributeValueMemberBOOL{Value: true},
		},
		{
			"null",
			events.NewNullAttribute(),
			&types.AttributeValueMemberNULL{Value: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAttribute(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %#v, got %#v", tt.expected, got)
			}
		})
	}
}

func TestFromAttribute_Sets(t *testing.T) {
	ss, err := FromAttribute(events.NewStringSetAttribute([]string{"a", "b"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ss, &types.AttributeValueMemberSS{Value: []string{"a", "b"}}) {
		t.Errorf("unexpected string set: %#v", ss)
	}

	ns, err := FromAttribute(events.NewNumberSetAttribute([]string{"1", "2"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ns, &types.AttributeValueMemberNS{Value: []string{"1", "2"}}) {
		t.Errorf("unexpected number set: %#v", ns)
	}
}

func TestFromAttribute_Nested(t *testing.T) {
	input := events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
		"name": events.NewStringAttribute("Ann"),
		"tags": events.NewListAttribute([]events.DynamoDBAttributeValue{
			events.NewStringAttribute("x"),
			events.NewNumberAttribute("1"),
		}),
	})

	got, err := FromAttribute(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := got.(*types.AttributeValueMemberM)
	if !ok {
		t.Fatalf("expected Map attribute, got %T", got)
	}
	list, ok := m.Value["tags"].(*types.AttributeValueMemberL)
	if !ok {
		t.Fatalf("expected nested List, got %T", m.Value["tags"])
	}
	if len(list.Value) != 2 {
		t.Fatalf("expected 2 list elements, got %d", len(list.Value))
	}
	if n, ok := list.Value[1].(*types.AttributeValueMemberN); !ok || n.Value != "1" {
		t.Errorf("unexpected list element: %#v", list.Value[1])
	}
}

func TestFromImage(t *testing.T) {
	image := map[string]events.DynamoDBAttributeValue{
		"id":      events.NewStringAttribute("u-1"),
		"version": events.NewNumberAttribute("5"),
	}

	got, err := FromImage(image)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(got))
	}
	if id, ok := got["id"].(*types.AttributeValueMemberS); !ok || id.Value != "u-1" {
		t.Errorf("unexpected id: %#v", got["id"])
	}
}
