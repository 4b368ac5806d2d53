package adapter

import "context"

// TxRepositories are the repositories bound to one open storage transaction.
type TxRepositories struct {
	Items      ItemRepository
	Records    TransactionRecordRepository
	Aggregates ProfitAggregateRepository
}

// UnitOfWork runs fn inside a single storage transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos TxRepositories) error) error
}
