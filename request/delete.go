package request

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/oproto/oproto-fluent-dynamodb-sub004/expr"
)

// Delete builds a DeleteItem request.
type Delete struct {
	table     string
	key       map[string]types.AttributeValue
	binder    *expr.Binder
	names     expr.NameEscaper
	condition string
	err       error
}

// NewDelete creates a Delete builder for the given table.
func NewDelete(table string) *Delete {
	return &Delete{
		table:  table,
		key:    make(map[string]types.AttributeValue),
		binder: expr.NewBinder(),
	}
}

// Key adds a primary key attribute.
func (d *Delete) Key(name string, value any) *Delete {
	if d.err != nil {
		return d
	}
	av, err := expr.Convert(value, "")
	if err != nil {
		d.err = fmt.Errorf("request: key %q: %w", name, err)
		return d
	}
	d.key[name] = av
	return d
}

// Name escapes an attribute name for use inside the condition template.
func (d *Delete) Name(attr string) string {
	return d.names.Escape(attr)
}

// Condition sets the condition expression from a placeholder template.
func (d *Delete) Condition(template string, args ...any) *Delete {
	if d.err != nil {
		return d
	}
	bound, err := d.binder.Bind(template, args...)
	if err != nil {
		d.err = err
		return d
	}
	d.condition = bound
	return d
}

// Build assembles the DeleteItemInput.
func (d *Delete) Build() (*dynamodb.DeleteItemInput, error) {
	if d.err != nil {
		return nil, d.err
	}
	if len(d.key) == 0 {
		return nil, ErrMissingKey
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       d.key,
	}
	if d.condition != "" {
		input.ConditionExpression = aws.String(d.condition)
		input.ExpressionAttributeNames = d.names.Names()
		input.ExpressionAttributeValues = d.binder.Values()
	}
	return input, nil
}
