package repository

import (
	"context"
	"fmt"

	"storefront/pkg/database"

	"go.uber.org/zap"
)

// TxManager runs fn against repositories bound to a single transaction.
// An error from fn rolls everything back; nil commits.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

// pgxTxManager hands base to the tx-scoped repositories, which add their own name.
type pgxTxManager struct {
	db   database.PgxIface
	base *zap.Logger
	log  *zap.Logger
}

func (m *pgxTxManager) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		m.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	// no-op after a successful commit
	defer tx.Rollback(ctx)

	scoped := newRepository(tx, m.base)
	scoped.Tx = joinedTx{repo: scoped}

	if err := fn(scoped); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		m.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// joinedTx runs nested WithinTx calls on the enclosing transaction.
type joinedTx struct {
	repo *Repository
}

func (j joinedTx) WithinTx(_ context.Context, fn func(tx *Repository) error) error {
	return fn(j.repo)
}
