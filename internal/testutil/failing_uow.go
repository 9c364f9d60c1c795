package testutil

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/medcorpus/internal/db"
)

// FaultyUoW delegates to a real unit of work but fails the FailOn-th write
// statement issued inside the transaction. Only ExecContext calls whose SQL
// contains Match are counted; an empty Match counts every write.
type FaultyUoW struct {
	Inner  db.UnitOfWork
	FailOn int32
	Match  string
	Err    error

	writes atomic.Int32
}

// NewFaultyUoW fails the nth write of any kind with err.
func NewFaultyUoW(database *sql.DB, nth int32, err error) *FaultyUoW {
	return &FaultyUoW{Inner: db.NewSQLiteUnitOfWork(database), FailOn: nth, Err: err}
}

// Writes returns how many matching statements were attempted.
func (u *FaultyUoW) Writes() int {
	return int(u.writes.Load())
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &faultyTx{DBTX: tx, uow: u})
	})
}

type faultyTx struct {
	db.DBTX
	uow *FaultyUoW
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		if f.uow.writes.Add(1) == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
