// Package store persists encoded instances in a key-value backend.
//
// Every record is the 8-byte big-endian schema fingerprint followed by the
// encoded instance, so a record written under one schema is never decoded
// under another. Backends only move opaque bytes:
//   - memory: in-process map for tests and single-process use
//   - redisstore: Redis with optional key prefix and TTL
//   - mongostore: one MongoDB document per record
//
// # Usage
//
//	repo := store.New(store.NewMemory(), schema, nil)
//	id, err := repo.Save(ctx, inst)
//	if err != nil {
//	    return err
//	}
//	inst, err = repo.Load(ctx, id)
package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reoring/tasl"
	"github.com/reoring/tasl/codec"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSchemaMismatch is returned when a record was written under a
	// different schema than the repository's.
	ErrSchemaMismatch = errors.New("schema fingerprint mismatch")

	// ErrCorrupt is returned when a record is too short to carry a header.
	ErrCorrupt = errors.New("corrupt record")
)

// Backend is the interface for byte-level storage.
type Backend interface {
	// Get returns the stored bytes or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key returns ErrNotFound.
	Delete(ctx context.Context, key string) error
}

const headerSize = 8

// Repository stores instances of one schema in a Backend.
type Repository struct {
	backend     Backend
	schema      *tasl.Schema
	codec       *codec.Codec
	fingerprint uint64
}

// New creates a repository. A nil codec uses the default options.
func New(backend Backend, schema *tasl.Schema, c *codec.Codec) *Repository {
	if c == nil {
		c = codec.New(codec.DefaultOptions())
	}
	return &Repository{
		backend:     backend,
		schema:      schema,
		codec:       c,
		fingerprint: tasl.Fingerprint(schema),
	}
}

// Schema returns the schema the repository encodes with.
func (r *Repository) Schema() *tasl.Schema { return r.schema }

// Save stores inst under a fresh random key and returns the key.
func (r *Repository) Save(ctx context.Context, inst tasl.Instance) (string, error) {
	key := uuid.NewString()
	if err := r.Put(ctx, key, inst); err != nil {
		return "", err
	}
	return key, nil
}

// Put stores inst under key.
func (r *Repository) Put(ctx context.Context, key string, inst tasl.Instance) error {
	rec := binary.BigEndian.AppendUint64(make([]byte, 0, 64), r.fingerprint)
	rec, err := r.codec.AppendEncode(rec, r.schema, inst)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.backend.Put(ctx, key, rec); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Load reads and decodes the instance stored under key.
func (r *Repository) Load(ctx context.Context, key string) (tasl.Instance, error) {
	rec, err := r.backend.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if len(rec) < headerSize {
		return nil, fmt.Errorf("get %s: %w", key, ErrCorrupt)
	}
	if fp := binary.BigEndian.Uint64(rec); fp != r.fingerprint {
		return nil, fmt.Errorf("get %s: %w (stored %016x, want %016x)", key, ErrSchemaMismatch, fp, r.fingerprint)
	}
	inst, err := r.codec.Decode(r.schema, rec[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return inst, nil
}

// Delete removes the record stored under key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if err := r.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
