package mocks

import (
	"context"
	"database/sql"

	"github.com/smartsite/task-api/internal/store"
)

// MockTxRunner implements store.TxRunner without a database. It calls the
// function with a nil transaction and counts calls; Err, when set, is
// returned instead of running the function.
type MockTxRunner struct {
	Calls int
	Err   error
}

var _ store.TxRunner = (*MockTxRunner)(nil)

// RunInTransaction implements store.TxRunner
func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, (*sql.Tx)(nil))
}
