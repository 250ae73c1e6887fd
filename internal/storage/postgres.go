package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fantasy-books/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ChangeChannel is the LISTEN/NOTIFY channel carrying Change payloads.
const ChangeChannel = "kv_changes"

// Postgres stores values in the kv_store table created by cmd/migrate.
type Postgres struct {
	db  *sql.DB
	dsn string
}

// NewPostgres wraps db. dsn is only needed by Watch, which opens its own
// listener connection.
func NewPostgres(db *sql.DB, dsn string) *Postgres {
	return &Postgres{db: db, dsn: dsn}
}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	return p.withNotify(ctx, key, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv_store (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, updated_at = NOW()
		`, key, string(value))
		return err
	})
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	return p.withNotify(ctx, key, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
		return err
	})
}

// withNotify runs write and queues the change notification in the same
// transaction; Postgres delivers it only if the write commits.
func (p *Postgres) withNotify(ctx context.Context, key string, write func(tx *sql.Tx) error) error {
	payload, err := json.Marshal(Change{Key: key, Origin: OriginFrom(ctx)})
	if err != nil {
		return err
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := write(tx); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, ChangeChannel, string(payload)); err != nil {
		return fmt.Errorf("notify %s: %w", key, err)
	}
	return tx.Commit()
}

func (p *Postgres) Watch(ctx context.Context) (<-chan Change, error) {
	listener := pq.NewListener(p.dsn, 10*time.Second, time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.L().Warn("kv listener event", zap.Int("event", int(ev)), zap.Error(err))
			}
		})
	if err := listener.Listen(ChangeChannel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("listen %s: %w", ChangeChannel, err)
	}

	out := make(chan Change, watchBuffer)
	go func() {
		defer close(out)
		defer listener.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case n := <-listener.Notify:
				// nil after a reconnect; anything missed meanwhile is gone.
				if n == nil {
					continue
				}
				c, err := decodeChange(n.Extra)
				if err != nil {
					logger.L().Warn("malformed kv change", zap.String("payload", n.Extra), zap.Error(err))
					continue
				}
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func decodeChange(payload string) (Change, error) {
	var c Change
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return Change{}, err
	}
	if c.Key == "" {
		return Change{}, errors.New("change without key")
	}
	return c, nil
}
