// Package store persists products, orders, users and coupons as JSON
// documents in an embedded Badger database.
//
// Each collection lives under its own key prefix. Queries are expressed with
// the models.*Query filter types and evaluated inside a read transaction.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"ecommerce-backend/internal/config"
)

var (
	ErrNotFound          = errors.New("document not found")
	ErrDuplicate         = errors.New("duplicate document")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// maxConflictRetries bounds how often a write transaction is replayed after
// Badger reports a conflict with a concurrent writer.
const maxConflictRetries = 64

const (
	productsPrefix    = "products/"
	ordersPrefix      = "orders/"
	usersPrefix       = "users/"
	couponsPrefix     = "coupons/"
	couponCodesPrefix = "coupon_codes/"
)

type Store struct {
	db     *badger.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens the database at cfg.Path, or an in-memory one when cfg.InMemory is set.
func Open(cfg config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	logger.Info("document store opened", "path", cfg.Path, "in_memory", cfg.InMemory)

	return &Store{db: db, logger: logger, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func newID() string {
	return uuid.NewString()
}

func docKey(prefix, id string) []byte {
	return []byte(prefix + id)
}

func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

// update runs fn in a read-write transaction, replaying it on conflict. fn
// must only touch state through txn so a replay starts from scratch.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := range maxConflictRetries {
		if err := ctx.Err(); err != nil {
			return err
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		s.logger.DebugContext(ctx, "transaction conflict, retrying", "attempt", attempt+1)
	}
	return fmt.Errorf("transaction conflict after %d attempts: %w", maxConflictRetries, err)
}

func put[T any](txn *badger.Txn, prefix, id string, doc T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s%s: %w", prefix, id, err)
	}
	return txn.Set(docKey(prefix, id), data)
}

func get[T any](txn *badger.Txn, prefix, id string) (T, error) {
	var doc T

	item, err := txn.Get(docKey(prefix, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("get %s%s: %w", prefix, id, err)
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &doc)
	})
	return doc, err
}

func exists(txn *badger.Txn, prefix, id string) (bool, error) {
	_, err := txn.Get(docKey(prefix, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func remove(txn *badger.Txn, prefix, id string) error {
	ok, err := exists(txn, prefix, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return txn.Delete(docKey(prefix, id))
}

// scan decodes every document under prefix accepted by keep.
func scan[T any](txn *badger.Txn, prefix string, keep func(T) bool) ([]T, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)

	it := txn.NewIterator(opts)
	defer it.Close()

	docs := make([]T, 0)
	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		var doc T
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		if keep == nil || keep(doc) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func window[T any](docs []T, skip, limit int) []T {
	if skip > 0 {
		if skip >= len(docs) {
			return []T{}
		}
		docs = docs[skip:]
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}
