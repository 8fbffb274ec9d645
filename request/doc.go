// Package request provides fluent builders for DynamoDB read and write
// requests on top of the expr engine.
//
// Each builder assembles one SDK input struct. Templated clauses —
// conditions, update sets, key conditions, filters — go through an
// [expr.Binder], so placeholder arguments are converted and bound as
// uniquely-named parameters, and attribute names are escaped through an
// [expr.NameEscaper]:
//
//	update := request.NewUpdate("users")
//	update.Key("id", id)
//	update.Set(update.Name("name")+" = {0}", "Ann")
//	update.Set(update.Name("expires")+" = {0:ttl}", expires)
//	input, err := update.Build()
//
// Builders are single-use and single-goroutine: each owns its own
// binder and escaper, so concurrently built requests never share
// parameter tokens. An [Executor] runs built requests against a
// dynamodb.Client; retry policy, batching and transactions belong to
// the SDK and the caller, not to this package.
package request
