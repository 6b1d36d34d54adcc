package rowstore

import (
	"context"
	"sync"
)

// Factory builds the backing Store on first use.
type Factory func(ctx context.Context) (Store, error)

// Lazy is a process-scoped Store handle. The underlying client is built on
// the first call and reused afterwards; a failed build is retried on the
// next call.
type Lazy struct {
	mu      sync.Mutex
	factory Factory
	store   Store
}

func NewLazy(factory Factory) *Lazy {
	return &Lazy{factory: factory}
}

func (l *Lazy) get(ctx context.Context) (Store, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.store != nil {
		return l.store, nil
	}
	s, err := l.factory(ctx)
	if err != nil {
		return nil, err
	}
	l.store = s
	return s, nil
}

func (l *Lazy) ReadTable(ctx context.Context, table string) ([][]string, error) {
	s, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.ReadTable(ctx, table)
}

func (l *Lazy) AppendRow(ctx context.Context, table string, values []string) error {
	s, err := l.get(ctx)
	if err != nil {
		return err
	}
	return s.AppendRow(ctx, table, values)
}

func (l *Lazy) AppendRows(ctx context.Context, table string, rows [][]string) error {
	s, err := l.get(ctx)
	if err != nil {
		return err
	}
	return s.AppendRows(ctx, table, rows)
}

func (l *Lazy) UpdateRow(ctx context.Context, table string, rowNumber int, values []string) error {
	s, err := l.get(ctx)
	if err != nil {
		return err
	}
	return s.UpdateRow(ctx, table, rowNumber, values)
}

func (l *Lazy) UpdateCell(ctx context.Context, table string, rowNumber, colIndex int, value string) error {
	s, err := l.get(ctx)
	if err != nil {
		return err
	}
	return s.UpdateCell(ctx, table, rowNumber, colIndex, value)
}

func (l *Lazy) DeleteRow(ctx context.Context, table string, rowNumber int) error {
	s, err := l.get(ctx)
	if err != nil {
		return err
	}
	return s.DeleteRow(ctx, table, rowNumber)
}
