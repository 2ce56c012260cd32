// Package store persists decoded interchange records into SQLite. Seller
// data (catalogs, prices, lookup domains) and buyer data (buyers, discounts)
// live in two separate database files, mirroring the directory partitioning
// of the archived source files.
//
// All record writes are upserts keyed by a composite of the owning party's
// id and the record's own identifier, and run inside a transaction the
// caller owns: one transaction per category, committed only when every row
// in it succeeded.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Store wraps the seller and buyer databases.
type Store struct {
	sellers *sql.DB
	buyers  *sql.DB
}

// Open opens both database files. Use ":memory:" for in-memory databases.
func Open(sellersPath, buyersPath string) (*Store, error) {
	sellers, err := openDB(sellersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sellers database: %w", err)
	}

	buyers, err := openDB(buyersPath)
	if err != nil {
		sellers.Close()
		return nil, fmt.Errorf("failed to open buyers database: %w", err)
	}

	return &Store{sellers: sellers, buyers: buyers}, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	// The importer is strictly sequential; a single connection also keeps
	// ":memory:" databases stable across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close closes both databases.
func (s *Store) Close() error {
	var firstErr error
	if s.sellers != nil {
		if err := s.sellers.Close(); err != nil {
			firstErr = err
		}
	}
	if s.buyers != nil {
		if err := s.buyers.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// BeginSellers starts a transaction against the seller database.
func (s *Store) BeginSellers(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.sellers.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin sellers transaction: %w", err)
	}
	return tx, nil
}

// BeginBuyers starts a transaction against the buyer database.
func (s *Store) BeginBuyers(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.buyers.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin buyers transaction: %w", err)
	}
	return tx, nil
}
