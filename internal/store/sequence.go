package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter issues the revision numbers stamped on snapshot writes
// and LLM events. One counter spans both tables, so "which happened
// first" can be answered across them.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// Next returns the current value and advances the counter in a single
// statement.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var rev int64
	row := sc.db.QueryRowContext(ctx, `UPDATE revision_counter SET next_rev = next_rev + 1 WHERE id = 1 RETURNING next_rev - 1`)
	if err := row.Scan(&rev); err != nil {
		return 0, fmt.Errorf("next revision: %w", err)
	}
	return rev, nil
}
