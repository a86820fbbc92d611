package service

import (
	"context"

	"noti-server/internal/domain"
	"noti-server/internal/repository"
)

// NoteService translates application operations into store calls. Absence of
// a note is reported with a nil note, never an error; only storage faults
// surface as errors.
type NoteService struct {
	repo repository.NoteRepository
}

func NewNoteService(repo repository.NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

func (s *NoteService) ListAll(ctx context.Context) ([]*domain.Note, error) {
	return s.repo.FindAll(ctx)
}

func (s *NoteService) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *NoteService) Create(ctx context.Context, req *domain.CreateNoteRequest) (*domain.Note, error) {
	note := &domain.Note{
		Title:   req.Title,
		Content: req.Content,
	}
	return s.repo.Insert(ctx, note)
}

// Update overwrites title and content of an existing note. The patch cannot
// touch id or createdAt; modifiedAt is refreshed by the store.
func (s *NoteService) Update(ctx context.Context, id int64, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	note.Title = req.Title
	note.Content = req.Content

	return s.repo.Update(ctx, note)
}

// Delete removes the note if it exists and reports whether a deletion
// occurred. Deleting an absent note is a no-op, not an error.
func (s *NoteService) Delete(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	return s.repo.DeleteByID(ctx, id)
}

func (s *NoteService) Search(ctx context.Context, keyword string) ([]*domain.Note, error) {
	return s.repo.SearchByTitleOrContent(ctx, keyword)
}

func (s *NoteService) SearchByTitle(ctx context.Context, title string) ([]*domain.Note, error) {
	return s.repo.SearchByTitle(ctx, title)
}
