package request

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/oproto/oproto-fluent-dynamodb-sub004/expr"
)

// Scan builds a Scan request.
type Scan struct {
	table  string
	index  string
	binder *expr.Binder
	names  expr.NameEscaper
	filter string
	limit  int32
	err    error
}

// NewScan creates a Scan builder for the given table.
func NewScan(table string) *Scan {
	return &Scan{
		table:  table,
		binder: expr.NewBinder(),
	}
}

// Index targets a GSI or LSI instead of the base table.
func (s *Scan) Index(name string) *Scan {
	s.index = name
	return s
}

// Name escapes an attribute name for use inside the filter template.
func (s *Scan) Name(attr string) string {
	return s.names.Escape(attr)
}

// Filter sets the filter expression from a placeholder template.
func (s *Scan) Filter(template string, args ...any) *Scan {
	if s.err != nil {
		return s
	}
	bound, err := s.binder.Bind(template, args...)
	if err != nil {
		s.err = err
		return s
	}
	s.filter = bound
	return s
}

// Limit caps the number of items returned per page.
func (s *Scan) Limit(n int32) *Scan {
	s.limit = n
	return s
}

// Build assembles the ScanInput.
func (s *Scan) Build() (*dynamodb.ScanInput, error) {
	if s.err != nil {
		return nil, s.err
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(s.table),
		ExpressionAttributeNames:  s.names.Names(),
		ExpressionAttributeValues: s.binder.Values(),
	}
	if s.filter != "" {
		input.FilterExpression = aws.String(s.filter)
	}
	if s.index != "" {
		input.IndexName = aws.String(s.index)
	}
	if s.limit > 0 {
		input.Limit = aws.Int32(s.limit)
	}
	return input, nil
}
