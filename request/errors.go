package request

import "errors"

var (
	// ErrNotFound is returned when a get finds no item.
	ErrNotFound = errors.New("request: item not found")

	// ErrConditionFailed is returned when a write's condition expression
	// rejected the item.
	ErrConditionFailed = errors.New("request: condition check failed")

	// ErrMissingKey is returned when building a request that requires a
	// primary key and none was set.
	ErrMissingKey = errors.New("request: primary key not set")

	// ErrMissingKeyCondition is returned when building a query without a
	// key condition expression.
	ErrMissingKeyCondition = errors.New("request: key condition not set")

	// ErrEmptyUpdate is returned when building an update with no
	// clauses.
	ErrEmptyUpdate = errors.New("request: update has no clauses")
)
