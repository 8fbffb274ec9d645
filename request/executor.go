package request

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Executor runs built requests against a DynamoDB client.
type Executor struct {
	client *dynamodb.Client
	logger *slog.Logger
}

// NewExecutor creates an Executor. A nil logger falls back to
// slog.Default.
func NewExecutor(client *dynamodb.Client, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		client: client,
		logger: logger,
	}
}

// Get runs a Get request, returning ErrNotFound when no item exists.
func (e *Executor) Get(ctx context.Context, g *Get) (map[string]types.AttributeValue, error) {
	input, err := g.Build()
	if err != nil {
		return nil, err
	}
	result, err := e.client.GetItem(ctx, input)
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}
	return result.Item, nil
}

// Put runs a Put request. A failed condition maps to
// ErrConditionFailed.
func (e *Executor) Put(ctx context.Context, p *Put) error {
	input, err := p.Build()
	if err != nil {
		return err
	}
	e.logger.Debug("put item",
		"table", aws.ToString(input.TableName),
		"condition", aws.ToString(input.ConditionExpression),
	)
	_, err = e.client.PutItem(ctx, input)
	return mapConditionError(err)
}

// Update runs an Update request. A failed condition maps to
// ErrConditionFailed.
func (e *Executor) Update(ctx context.Context, u *Update) error {
	input, err := u.Build()
	if err != nil {
		return err
	}
	e.logger.Debug("update item",
		"table", aws.ToString(input.TableName),
		"update", aws.ToString(input.UpdateExpression),
		"condition", aws.ToString(input.ConditionExpression),
	)
	_, err = e.client.UpdateItem(ctx, input)
	return mapConditionError(err)
}

// Delete runs a Delete request. A failed condition maps to
// ErrConditionFailed.
func (e *Executor) Delete(ctx context.Context, d *Delete) error {
	input, err := d.Build()
	if err != nil {
		return err
	}
	e.logger.Debug("delete item",
		"table", aws.ToString(input.TableName),
		"condition", aws.ToString(input.ConditionExpression),
	)
	_, err = e.client.DeleteItem(ctx, input)
	return mapConditionError(err)
}

// Query runs a Query request, paginating through every page.
func (e *Executor) Query(ctx context.Context, q *Query) ([]map[string]types.AttributeValue, error) {
	input, err := q.Build()
	if err != nil {
		return nil, err
	}
	e.logger.Debug("query",
		"table", aws.ToString(input.TableName),
		"keyCondition", aws.ToString(input.KeyConditionExpression),
		"filter", aws.ToString(input.FilterExpression),
	)

	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewQueryPaginator(e.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// Scan runs a Scan request, paginating through every page.
func (e *Executor) Scan(ctx context.Context, s *Scan) ([]map[string]types.AttributeValue, error) {
	input, err := s.Build()
	if err != nil {
		return nil, err
	}
	e.logger.Debug("scan",
		"table", aws.ToString(input.TableName),
		"filter", aws.ToString(input.FilterExpression),
	)

	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewScanPaginator(e.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// mapConditionError translates the SDK's conditional check failure into
// this package's sentinel.
func mapConditionError(err error) error {
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return ErrConditionFailed
	}
	return err
}
