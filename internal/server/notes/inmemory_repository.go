package notes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/corkboard/internal/common"
)

// InMemoryRepository keeps notes in a map. Used by tests and by local runs
// without a database.
type InMemoryRepository struct {
	mu    sync.RWMutex
	notes map[string]*Note
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{notes: make(map[string]*Note)}
}

func (r *InMemoryRepository) Create(ctx context.Context, note *Note) (*Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := *note
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.notes[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) Edit(ctx context.Context, id string, text string, x, y float64, user UserRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return common.ErrorNotFound
	}
	note.Text = text
	note.X = x
	note.Y = y
	note.User = user
	note.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) Move(ctx context.Context, id string, x, y float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return common.ErrorNotFound
	}
	note.X = x
	note.Y = y
	note.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *InMemoryRepository) ListByBoard(ctx context.Context, boardID string) ([]*Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Note, 0)
	for _, note := range r.notes {
		if note.BoardID != boardID {
			continue
		}
		copied := *note
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}
