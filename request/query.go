package request

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/oproto/oproto-fluent-dynamodb-sub004/expr"
)

// Query builds a Query request.
type Query struct {
	table        string
	index        string
	binder       *expr.Binder
	names        expr.NameEscaper
	keyCondition string
	filter       string
	limit        int32
	forward      *bool
	err          error
}

// NewQuery creates a Query builder for the given table.
func NewQuery(table string) *Query {
	return &Query{
		table:  table,
		binder: expr.NewBinder(),
	}
}

// Index targets a GSI or LSI instead of the base table.
func (q *Query) Index(name string) *Query {
	q.index = name
	return q
}

// Name escapes an attribute name for use inside a clause template.
func (q *Query) Name(attr string) string {
	return q.names.Escape(attr)
}

// KeyCondition sets the key condition expression from a placeholder
// template, e.g.
//
//	q.KeyCondition("pk = {0} AND sk BETWEEN {1} AND {2}", pk, lo, hi)
func (q *Query) KeyCondition(template string, args ...any) *Query {
	if q.err != nil {
		return q
	}
	bound, err := q.binder.Bind(template, args...)
	if err != nil {
		q.err = err
		return q
	}
	q.keyCondition = bound
	return q
}

// Filter sets the filter expression from a placeholder template.
func (q *Query) Filter(template string, args ...any) *Query {
	if q.err != nil {
		return q
	}
	bound, err := q.binder.Bind(template, args...)
	if err != nil {
		q.err = err
		return q
	}
	q.filter = bound
	return q
}

// Limit caps the number of items returned per page.
func (q *Query) Limit(n int32) *Query {
	q.limit = n
	return q
}

// Ascending sets the sort order (true = ascending, the service
// default).
func (q *Query) Ascending(forward bool) *Query {
	q.forward = &forward
	return q
}

// Build assembles the QueryInput.
func (q *Query) Build() (*dynamodb.QueryInput, error) {
	if q.err != nil {
		return nil, q.err
	}
	if q.keyCondition == "" {
		return nil, ErrMissingKeyCondition
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(q.table),
		KeyConditionExpression:    aws.String(q.keyCondition),
		ExpressionAttributeNames:  q.names.Names(),
		ExpressionAttributeValues: q.binder.Values(),
	}
	if q.filter != "" {
		input.FilterExpression = aws.String(q.filter)
	}
	if q.index != "" {
		input.IndexName = aws.String(q.index)
	}
	if q.limit > 0 {
		input.Limit = aws.Int32(q.limit)
	}
	if q.forward != nil {
		input.ScanIndexForward = q.forward
	}
	return input, nil
}
