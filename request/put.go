package request

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/oproto/oproto-fluent-dynamodb-sub004/expr"
)

// Put builds a PutItem request.
type Put struct {
	table     string
	item      map[string]types.AttributeValue
	binder    *expr.Binder
	names     expr.NameEscaper
	condition string
	err       error
}

// NewPut creates a Put builder for the given table.
func NewPut(table string) *Put {
	return &Put{
		table:  table,
		item:   make(map[string]types.AttributeValue),
		binder: expr.NewBinder(),
	}
}

// Item marshals a struct or map into the item via attributevalue,
// merging over any attributes already set.
func (p *Put) Item(v any) *Put {
	if p.err != nil {
		return p
	}
	m, err := attributevalue.MarshalMap(v)
	if err != nil {
		p.err = fmt.Errorf("request: marshal item: %w", err)
		return p
	}
	for k, av := range m {
		p.item[k] = av
	}
	return p
}

// Attr sets a single item attribute through the engine's conversion
// rules with the default rendering.
func (p *Put) Attr(name string, value any) *Put {
	return p.AttrFormat(name, value, "")
}

// AttrFormat sets a single item attribute with an explicit format, for
// example "ttl" on a timestamp to store epoch seconds.
func (p *Put) AttrFormat(name string, value any, format string) *Put {
	if p.err != nil {
		return p
	}
	av, err := expr.Convert(value, format)
	if err != nil {
		p.err = fmt.Errorf("request: attribute %q: %w", name, err)
		return p
	}
	p.item[name] = av
	return p
}

// Name escapes an attribute name for use inside a condition template.
func (p *Put) Name(attr string) string {
	return p.names.Escape(attr)
}

// Condition sets the condition expression from a placeholder template.
func (p *Put) Condition(template string, args ...any) *Put {
	if p.err != nil {
		return p
	}
	bound, err := p.binder.Bind(template, args...)
	if err != nil {
		p.err = err
		return p
	}
	p.condition = bound
	return p
}

// Build assembles the PutItemInput.
func (p *Put) Build() (*dynamodb.PutItemInput, error) {
	if p.err != nil {
		return nil, p.err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(p.table),
		Item:      p.item,
	}
	if p.condition != "" {
		input.ConditionExpression = aws.String(p.condition)
		input.ExpressionAttributeNames = p.names.Names()
		input.ExpressionAttributeValues = p.binder.Values()
	}
	return input, nil
}
