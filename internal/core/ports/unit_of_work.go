package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Repositories obtained from it use
// the transaction opened by Begin, or the plain connection before that.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is active.
	Commit(ctx context.Context) error

	// Rollback fails when no transaction is active; callers defer it and
	// ignore the error after a successful Commit.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	InventoryStore() InventoryStore
	QrTokenRepository() QrTokenRepository
}
