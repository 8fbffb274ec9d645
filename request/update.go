package request

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/oproto/oproto-fluent-dynamodb-sub004/expr"
)

// Update builds an UpdateItem request. SET clauses, REMOVE targets and
// the condition share one binder and one name escaper, so tokens never
// collide within the request.
type Update struct {
	table     string
	key       map[string]types.AttributeValue
	binder    *expr.Binder
	names     expr.NameEscaper
	set       []string
	remove    []string
	condition string
	err       error
}

// NewUpdate creates an Update builder for the given table.
func NewUpdate(table string) *Update {
	return &Update{
		table:  table,
		key:    make(map[string]types.AttributeValue),
		binder: expr.NewBinder(),
	}
}

// Key adds a primary key attribute.
func (u *Update) Key(name string, value any) *Update {
	if u.err != nil {
		return u
	}
	av, err := expr.Convert(value, "")
	if err != nil {
		u.err = fmt.Errorf("request: key %q: %w", name, err)
		return u
	}
	u.key[name] = av
	return u
}

// Name escapes an attribute name for use inside a clause template.
func (u *Update) Name(attr string) string {
	return u.names.Escape(attr)
}

// Set appends one SET clause from a placeholder template, e.g.
//
//	u.Set(u.Name("age")+" = {0}", 30)
//	u.Set(u.Name("expires")+" = {0:ttl}", deadline)
func (u *Update) Set(clause string, args ...any) *Update {
	if u.err != nil {
		return u
	}
	bound, err := u.binder.Bind(clause, args...)
	if err != nil {
		u.err = err
		return u
	}
	u.set = append(u.set, bound)
	return u
}

// Remove appends REMOVE targets. Names are escaped.
func (u *Update) Remove(attrs ...string) *Update {
	for _, attr := range attrs {
		u.remove = append(u.remove, u.names.Escape(attr))
	}
	return u
}

// Condition sets the condition expression from a placeholder template.
func (u *Update) Condition(template string, args ...any) *Update {
	if u.err != nil {
		return u
	}
	bound, err := u.binder.Bind(template, args...)
	if err != nil {
		u.err = err
		return u
	}
	u.condition = bound
	return u
}

// Build assembles the UpdateItemInput.
func (u *Update) Build() (*dynamodb.UpdateItemInput, error) {
	if u.err != nil {
		return nil, u.err
	}
	if len(u.key) == 0 {
		return nil, ErrMissingKey
	}
	if len(u.set) == 0 && len(u.remove) == 0 {
		return nil, ErrEmptyUpdate
	}

	var clauses []string
	if len(u.set) > 0 {
		clauses = append(clauses, "SET "+strings.Join(u.set, ", "))
	}
	if len(u.remove) > 0 {
		clauses = append(clauses, "REMOVE "+strings.Join(u.remove, ", "))
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(u.table),
		Key:                       u.key,
		UpdateExpression:          aws.String(strings.Join(clauses, " ")),
		ExpressionAttributeNames:  u.names.Names(),
		ExpressionAttributeValues: u.binder.Values(),
	}
	if u.condition != "" {
		input.ConditionExpression = aws.String(u.condition)
	}
	return input, nil
}
