package shared

import "context"

// TxManager runs fn inside a single database transaction. Calls made with
// the context given to fn join that transaction; nested calls reuse the
// transaction already carried by the context.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
