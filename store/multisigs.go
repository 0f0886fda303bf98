package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Multisig is a multisig contract the user has opened before.
type Multisig struct {
	Address    string    `json:"address"`
	Label      string    `json:"label"`
	LastUsedAt time.Time `json:"last_used_at"`
}

type MultisigOption func(*multisigFilter)

func WithLimit(limit int) MultisigOption {
	return func(f *multisigFilter) {
		f.limit = limit
	}
}

type multisigFilter struct {
	limit int
}

// SaveMultisig inserts or updates ms and marks it as used now. An empty
// label never overwrites a known one.
func (s *multisigStore) SaveMultisig(ctx context.Context, ms *Multisig) error {
	if ms.Address == "" {
		return fmt.Errorf("multisig address is empty")
	}
	ms.LastUsedAt = s.now()

	_, err := s.db.ExecContext(ctx, `
	INSERT INTO multisigs(address, label, created_at, last_used_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(address) DO UPDATE SET
	 label=CASE WHEN excluded.label = '' THEN multisigs.label ELSE excluded.label END,
	 last_used_at=excluded.last_used_at;
	`, ms.Address, ms.Label, ms.LastUsedAt, ms.LastUsedAt)
	if err != nil {
		return fmt.Errorf("failed to save multisig: %w", err)
	}
	return nil
}

// GetMultisig returns nil without an error when address is not cached.
func (s *multisigStore) GetMultisig(ctx context.Context, address string) (*Multisig, error) {
	row := s.db.QueryRowContext(ctx, `SELECT address, label, last_used_at FROM multisigs WHERE address = ?`, address)

	var ms Multisig
	if err := row.Scan(&ms.Address, &ms.Label, &ms.LastUsedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get multisig: %w", err)
	}
	return &ms, nil
}

// GetMultisigs lists cached multisigs, most recently used first.
func (s *multisigStore) GetMultisigs(ctx context.Context, opts ...MultisigOption) ([]*Multisig, error) {
	var filter multisigFilter
	for _, opt := range opts {
		opt(&filter)
	}

	query := `SELECT address, label, last_used_at FROM multisigs ORDER BY last_used_at DESC, address`
	args := []any{}
	if filter.limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get multisigs: %w", err)
	}
	defer rows.Close()

	var out []*Multisig
	for rows.Next() {
		var ms Multisig
		if err := rows.Scan(&ms.Address, &ms.Label, &ms.LastUsedAt); err != nil {
			return nil, fmt.Errorf("failed to scan multisig: %w", err)
		}
		out = append(out, &ms)
	}
	return out, rows.Err()
}

func (s *multisigStore) DeleteMultisig(ctx context.Context, address string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM multisigs WHERE address = ?`, address); err != nil {
		return fmt.Errorf("failed to delete multisig: %w", err)
	}
	return nil
}
