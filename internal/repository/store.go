package repository

import (
	"context"
	"errors"
	"iter"

	"github.com/google/uuid"
	"github.com/yukikurage/list-task-api/internal/models"
)

var (
	// ErrNotFound is returned by FindOne and Update when no record matches the filter.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateKey is returned by Insert when a unique column already holds the value.
	ErrDuplicateKey = errors.New("repository: duplicate key")
)

// Filter is an exact-match predicate keyed by column name. An empty Filter
// matches every record.
type Filter map[string]any

// Patch maps column names to their new values.
type Patch map[string]any

// Record is implemented by the pointer type of every persisted entity.
type Record interface {
	GetID() string
	SetID(id string)
	Column(name string) (any, bool)
	SetColumn(name string, value any) error
}

type recordPtr[T any] interface {
	*T
	Record
}

// Collection defines data access for one entity kind.
// Every call is atomic on its own; nothing spans calls.
type Collection[T any] interface {
	// Insert assigns a new ID to rec and stores it
	Insert(ctx context.Context, rec *T) error

	// FindOne returns the first record matching filter
	FindOne(ctx context.Context, filter Filter) (*T, error)

	// FindMany lazily yields every record matching filter
	FindMany(ctx context.Context, filter Filter) iter.Seq2[*T, error]

	// Update applies patch to the first match and returns the updated record
	Update(ctx context.Context, filter Filter, patch Patch) (*T, error)

	// DeleteOne removes the first match and reports how many records were removed
	DeleteOne(ctx context.Context, filter Filter) (int64, error)

	// DeleteMany removes every match and reports how many records were removed
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
}

// Store groups the collections of every entity kind.
type Store struct {
	Users Collection[models.User]
	Lists Collection[models.List]
	Tasks Collection[models.Task]
}

// Collect drains a FindMany sequence. The result is never nil.
func Collect[T any](seq iter.Seq2[*T, error]) ([]T, error) {
	out := []T{}
	for rec, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

// NewID returns a fresh store identifier.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether id is a well-formed store identifier.
func IsValidID(id string) bool {
	_, ok := CanonicalID(id)
	return ok
}

// CanonicalID returns id in the lowercase hyphenated form records are stored
// under. Upper-case, braced and urn:uuid: spellings are accepted.
func CanonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// checkPatch rejects patches that name a column the entity does not allow
// to change.
func checkPatch[T any, PT recordPtr[T]](patch Patch) error {
	var probe T
	for column, value := range patch {
		if err := PT(&probe).SetColumn(column, value); err != nil {
			return err
		}
	}
	return nil
}
