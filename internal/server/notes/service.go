package notes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/corkboard/internal/common"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new note. The board id is mandatory; a missing note id is
// backfilled (clients normally generate ids, older ones do not) and a missing
// kind becomes DefaultKind.
func (s *Service) Create(ctx context.Context, note *Note) (*Note, error) {

	if note.BoardID == "" {
		return nil, common.ErrorMissingBoardID
	}

	if note.ID == "" {
		note.ID = uuid.NewString()
	}

	if note.Kind == "" {
		note.Kind = DefaultKind
	}

	note, err := s.repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	return note, nil
}

func (s *Service) Edit(ctx context.Context, id string, text string, x, y float64, user UserRef) error {
	return s.repo.Edit(ctx, id, text, x, y, user)
}

func (s *Service) Move(ctx context.Context, id string, x, y float64) error {
	return s.repo.Move(ctx, id, x, y)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListByBoard returns the notes snapshot sent to joining clients and the REST
// read surface.
func (s *Service) ListByBoard(ctx context.Context, boardID string) ([]*Note, error) {
	if boardID == "" {
		return nil, common.ErrorMissingBoardID
	}
	return s.repo.ListByBoard(ctx, boardID)
}
