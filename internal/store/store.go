package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pourlog/pourlog/internal/common"
	"github.com/pourlog/pourlog/internal/derive"
	"github.com/pourlog/pourlog/internal/logging"
	"github.com/pourlog/pourlog/internal/models"
	"github.com/pourlog/pourlog/internal/observe"
)

// Persistence rewrites the whole collection after each mutation and reloads
// it once at startup. Mid-session reads never touch it; the in-memory
// snapshot is authoritative.
type Persistence interface {
	LoadAll(ctx context.Context) ([]models.PourRecord, error)
	ReplaceAll(ctx context.Context, records []models.PourRecord) error
}

// Draft is the input for creating a record. A photo is required; DateTime
// defaults to now when zero.
type Draft struct {
	DateTime int64
	PhotoURL string `validate:"required"`
	Rating   int    `validate:"min=1,max=5"`
	Notes    string
	Pattern  string
}

// Patch is a partial update: nil fields are left untouched.
type Patch struct {
	DateTime *int64
	PhotoURL *string
	Rating   *int
	Notes    *string
	Pattern  *string
}

// Store is the authoritative collection of pour records.
//
// All reads come from an in-memory snapshot that is only ever replaced
// wholesale, never mutated in place. Mutations serialize on a mutex, persist
// before publishing, and notify subscribers synchronously afterwards — so
// subscribers observe a total order of complete states, and a notification
// never exposes a record whose photo assets are not yet on disk.
//
// Concurrent operations on the same id are deliberately not coordinated
// beyond that atomicity: last writer wins by completion order.
type Store struct {
	mu       sync.Mutex
	persist  Persistence
	pipeline *derive.Pipeline
	validate *validator.Validate
	log      logging.Logger

	snapshot *observe.Value[[]models.PourRecord]
}

func New(persist Persistence, pipeline *derive.Pipeline, log logging.Logger) *Store {
	return &Store{
		persist:  persist,
		pipeline: pipeline,
		validate: validator.New(),
		log:      log.With("component", "store"),
		snapshot: observe.NewValue[[]models.PourRecord](nil),
	}
}

// Open rehydrates the collection from durable storage. It must complete
// before any reader observes the store.
func (s *Store) Open(ctx context.Context) error {
	records, err := s.persist.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("rehydrate store: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Set(records)
	s.log.Info(ctx, "store rehydrated", "records", len(records))
	return nil
}

// All returns the current snapshot, most recently created first. The returned
// slice is shared with other readers and must not be mutated.
func (s *Store) All() []models.PourRecord {
	return s.snapshot.Get()
}

// Watch registers a listener invoked synchronously after every committed
// mutation with the new snapshot. It returns the unsubscribe function.
func (s *Store) Watch(fn func([]models.PourRecord)) func() {
	return s.snapshot.Subscribe(fn)
}

// Create validates the draft, derives photo assets, appends the enriched
// record and persists before notifying. Returns the new record's id.
func (s *Store) Create(ctx context.Context, draft Draft) (string, error) {
	if err := s.validate.Struct(draft); err != nil {
		if draft.PhotoURL == "" {
			return "", fmt.Errorf("%w: photo required", common.ErrValidation)
		}
		return "", fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	derived, err := s.pipeline.Derive(ctx, models.ParsePhotoRef(draft.PhotoURL), "")
	if err != nil {
		return "", err
	}

	record := models.PourRecord{
		ID:       uuid.NewString(),
		DateTime: draft.DateTime,
		Photo:    derived.Photo,
		Rating:   draft.Rating,
		Notes:    draft.Notes,
		Pattern:  draft.Pattern,
		Blurhash: derived.Blurhash,
	}
	if record.DateTime == 0 {
		record.DateTime = time.Now().UnixMilli()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snapshot.Get()
	next := make([]models.PourRecord, 0, len(cur)+1)
	next = append(next, record)
	next = append(next, cur...)

	if err := s.commit(ctx, next); err != nil {
		return "", err
	}
	s.log.Info(ctx, "record created", "id", record.ID)
	return record.ID, nil
}

// Update merges patch into the record with the given id. A patched photo is
// re-derived first, which is a cheap no-op for remote or already-managed
// refs. Missing ids fail with common.ErrNotFound.
func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	existing, ok := s.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}

	if patch.Rating != nil {
		if err := s.validate.Var(*patch.Rating, "min=1,max=5"); err != nil {
			return fmt.Errorf("%w: rating out of range: %d", common.ErrValidation, *patch.Rating)
		}
	}

	photo := existing.Photo
	blurhash := existing.Blurhash
	if patch.PhotoURL != nil {
		derived, err := s.pipeline.Derive(ctx, models.ParsePhotoRef(*patch.PhotoURL), existing.Blurhash)
		if err != nil {
			return err
		}
		photo = derived.Photo
		blurhash = derived.Blurhash
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snapshot.Get()
	idx := -1
	for i, r := range cur {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Destroyed while the derivation was in flight.
		return fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}

	merged := cur[idx]
	merged.Photo = photo
	merged.Blurhash = blurhash
	if patch.DateTime != nil {
		merged.DateTime = *patch.DateTime
	}
	if patch.Rating != nil {
		merged.Rating = *patch.Rating
	}
	if patch.Notes != nil {
		merged.Notes = *patch.Notes
	}
	if patch.Pattern != nil {
		merged.Pattern = *patch.Pattern
	}

	next := make([]models.PourRecord, len(cur))
	copy(next, cur)
	next[idx] = merged

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.log.Debug(ctx, "record updated", "id", id)
	return nil
}

// Destroy removes the record if present. Destroying an absent id is a no-op,
// not an error.
func (s *Store) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snapshot.Get()
	next := make([]models.PourRecord, 0, len(cur))
	for _, r := range cur {
		if r.ID != id {
			next = append(next, r)
		}
	}
	if len(next) == len(cur) {
		return nil
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.log.Info(ctx, "record destroyed", "id", id)
	return nil
}

// DestroyAll empties the collection. The caller is responsible for any user
// confirmation; the store performs it unconditionally.
func (s *Store) DestroyAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, []models.PourRecord{}); err != nil {
		return err
	}
	s.log.Info(ctx, "all records destroyed")
	return nil
}

// Export serializes the whole collection to the canonical snapshot form.
func (s *Store) Export() ([]byte, error) {
	return models.EncodeSnapshot(s.All())
}

// Import parses a snapshot payload and replaces the entire collection with
// it. Legacy field names and scalar encodings are normalized during decode.
// Like DestroyAll, confirmation is the caller's responsibility.
func (s *Store) Import(ctx context.Context, data []byte) error {
	records, err := models.DecodeSnapshot(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, records); err != nil {
		return err
	}
	s.log.Info(ctx, "snapshot imported", "records", len(records))
	return nil
}

// find looks up a record in the current snapshot.
func (s *Store) find(id string) (models.PourRecord, bool) {
	for _, r := range s.All() {
		if r.ID == id {
			return r, true
		}
	}
	return models.PourRecord{}, false
}

// commit persists next and only then publishes it. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []models.PourRecord) error {
	if err := s.persist.ReplaceAll(ctx, next); err != nil {
		return fmt.Errorf("persist records: %w", err)
	}
	s.snapshot.Set(next)
	return nil
}
