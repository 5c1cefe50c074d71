package repositories

import "context"

// UnitOfWork makes the slug check and the write of a create or update one
// atomic step. Repositories join the transaction through the ctx handed to fn;
// a Do inside another Do reuses the outer transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
