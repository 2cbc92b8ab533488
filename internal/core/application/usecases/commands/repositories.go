// Package commands contains the operations that mutate fulfillment state.
// Every handler follows the same sequence: validate the command, authorise
// the acting user, take the per-order lock, run the change in one unit of
// work, then publish the recorded events after commit.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	InventoryStoreFactory interface {
		InventoryStore() ports.InventoryStore
	}

	QrTokenRepoFactory interface {
		QrTokenRepository() ports.QrTokenRepository
	}

	// FulfillmentUoW spans an order and the stock counters it moves, so a
	// failed inventory change rolls back the ledger too.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		InventoryStoreFactory
	}

	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// QrTokenUoW is used by the QR channel: tokens plus the order they point at.
	QrTokenUoW interface {
		TxManager
		OrderRepoFactory
		QrTokenRepoFactory
	}

	QrTokenUoWFactory interface {
		Create() QrTokenUoW
	}
)
