// Package store persists analysis reports.
//
// Backends:
//   - [SQLiteStore]: a local database file for the CLI's history
//   - [MongoStore]: a shared collection for the HTTP server
//   - [NullStore]: discards reports
//
// All backends return [ErrNotFound] for unknown IDs and list reports newest
// first.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/wallcheck/pkg/report"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a report does not exist.
	ErrNotFound = errors.New("report not found")

	// ErrUnknownBackend is returned by [Open] for an unrecognised backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Store is the interface for report storage backends.
type Store interface {
	// Save inserts r. Saving an existing ID replaces it.
	Save(ctx context.Context, r *report.Report) error

	// Get returns the report with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*report.Report, error)

	// List returns up to limit reports, newest first.
	List(ctx context.Context, limit int) ([]*report.Report, error)

	Close() error
}

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Path     string // sqlite
	MongoURI string // mongo
	Database string // mongo
}

// Open returns the store named by opts.Backend. An empty backend is
// equivalent to [BackendNone].
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NullStore{}, nil
	case BackendSQLite:
		return OpenSQLite(opts.Path)
	case BackendMongo:
		return OpenMongo(ctx, MongoConfig{URI: opts.MongoURI, Database: opts.Database})
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownBackend, opts.Backend)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// NullStore discards every report.
type NullStore struct{}

func (NullStore) Save(context.Context, *report.Report) error { return nil }

func (NullStore) Get(context.Context, string) (*report.Report, error) { return nil, ErrNotFound }

func (NullStore) List(context.Context, int) ([]*report.Report, error) { return nil, nil }

func (NullStore) Close() error { return nil }

var _ Store = NullStore{}
