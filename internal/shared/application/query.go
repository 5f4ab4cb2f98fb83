package application

import "context"

// Query marks a read-side request. Queries never mutate state and never
// publish events.
type Query interface {
	QueryName() string
}

// QueryHandler answers one query type with a result DTO.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
