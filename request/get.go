package request

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/oproto/oproto-fluent-dynamodb-sub004/expr"
)

// Get builds a GetItem request.
type Get struct {
	table      string
	key        map[string]types.AttributeValue
	names      expr.NameEscaper
	projection []string
	consistent bool
	err        error
}

// NewGet creates a Get builder for the given table.
func NewGet(table string) *Get {
	return &Get{
		table: table,
		key:   make(map[string]types.AttributeValue),
	}
}

// Key adds a primary key attribute, converting value with the default
// rendering for its type.
func (g *Get) Key(name string, value any) *Get {
	if g.err != nil {
		return g
	}
	av, err := expr.Convert(value, "")
	if err != nil {
		g.err = fmt.Errorf("request: key %q: %w", name, err)
		return g
	}
	g.key[name] = av
	return g
}

// Project restricts the returned attributes. Names are escaped, so
// reserved words are safe.
func (g *Get) Project(names ...string) *Get {
	for _, name := range names {
		g.projection = append(g.projection, g.names.Escape(name))
	}
	return g
}

// Consistent requests a strongly consistent read.
func (g *Get) Consistent() *Get {
	g.consistent = true
	return g
}

// Build assembles the GetItemInput.
func (g *Get) Build() (*dynamodb.GetItemInput, error) {
	if g.err != nil {
		return nil, g.err
	}
	if len(g.key) == 0 {
		return nil, ErrMissingKey
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(g.table),
		Key:       g.key,
	}
	if len(g.projection) > 0 {
		input.ProjectionExpression = aws.String(strings.Join(g.projection, ", "))
		input.ExpressionAttributeNames = g.names.Names()
	}
	if g.consistent {
		input.ConsistentRead = aws.Bool(true)
	}
	return input, nil
}
