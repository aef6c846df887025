// Package store provides persistent storage for sitemap diagrams.
//
// This package defines the storage interface for saved diagrams, with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
//
// # Architecture
//
// A stored diagram is a [Record]: the serialized document plus identity
// and timestamps. The Store interface supports:
//   - Get/Put/Delete operations (Put is an upsert)
//   - Listing stored diagram IDs
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Server
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "sitegrid", "diagrams")
//
// Save and load diagrams:
//
//	rec := &store.Record{ID: id, Document: doc}
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err := st.Get(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // No such diagram
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/sitegrid/sitegrid/pkg/diagram"
)

// ErrNotFound is returned when a requested diagram does not exist.
var ErrNotFound = errors.New("diagram not found")

// Record is one stored diagram.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name,omitempty" bson:"name,omitempty"`
	Document  diagram.Document `json:"document" bson:"document"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for diagram storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a diagram by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores a diagram, replacing any existing record with the same
	// ID. CreatedAt is set on first insert, UpdatedAt on every call.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a diagram. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all stored diagram IDs, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// stamp fills record timestamps for an upsert.
func stamp(rec *Record, existingCreated time.Time) {
	now := time.Now().UTC()
	if !existingCreated.IsZero() {
		rec.CreatedAt = existingCreated
	} else if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
}
