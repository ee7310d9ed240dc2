package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const preferencesTable = "preferences"

// Preferences is a string key/value table. Writes are last-write-wins.
type Preferences struct {
	drv *entsql.Driver
}

// Get returns the value stored under key and whether it was present.
func (p *Preferences) Get(ctx context.Context, key string) (string, bool, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("value").
		From(b.Table(preferencesTable)).
		Where(entsql.EQ("key", key)).
		Query()

	rows := &entsql.Rows{}
	if err := p.drv.Query(ctx, query, args, rows); err != nil {
		return "", false, fmt.Errorf("get preference %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan preference %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (p *Preferences) Set(ctx context.Context, key, value string) error {
	return p.SetMany(ctx, map[string]string{key: value})
}

// SetMany writes several keys in one transaction.
func (p *Preferences) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := p.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	now := time.Now().UnixMilli()
	for key, value := range values {
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(preferencesTable).
			Columns("key", "value", "updated_at").
			Values(key, value, now).
			OnConflict(
				entsql.ConflictColumns("key"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("set preference %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (p *Preferences) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	query, qargs := entsql.Dialect(dialect.SQLite).
		Delete(preferencesTable).
		Where(entsql.In("key", args...)).
		Query()

	if err := p.drv.Exec(ctx, query, qargs, nil); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}

// All returns every stored preference.
func (p *Preferences) All(ctx context.Context) (map[string]string, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("key", "value").
		From(b.Table(preferencesTable)).
		OrderBy("key").
		Query()

	rows := &entsql.Rows{}
	if err := p.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}
