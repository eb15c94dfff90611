package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/notes-api/internal/domain/entity"
	repo "github.com/oksasatya/notes-api/internal/domain/repository"
)

var ErrNoteNotFound = errors.New("note not found")

// NoteService implements owner-scoped CRUD over notes. Every operation takes
// the caller's verified email and never exposes whether a note id exists
// under a different owner. Elasticsearch indexing is best-effort and never
// fails a request.
type NoteService struct {
	Repo         repo.NoteRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESNotesIndex string
}

func NewNoteService(r repo.NoteRepository, logger *logrus.Logger, es *elasticsearch.Client, esNotesIndex string) *NoteService {
	return &NoteService{
		Repo:         r,
		Logger:       logger,
		ES:           es,
		ESNotesIndex: esNotesIndex,
	}
}

// NoteInput carries the caller-editable fields of a note. Category is
// optional; title and content are accepted as-is, empty included.
type NoteInput struct {
	Title    string
	Content  string
	Category string
}

func (s *NoteService) Create(ctx context.Context, ownerEmail string, in NoteInput) (*entity.Note, error) {
	n := &entity.Note{
		OwnerEmail: ownerEmail,
		Title:      in.Title,
		Content:    in.Content,
		Category:   in.Category,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, err
	}
	_ = s.indexNote(ctx, n)
	return n, nil
}

func (s *NoteService) List(ctx context.Context, ownerEmail string) ([]*entity.Note, error) {
	return s.Repo.ListByOwner(ctx, ownerEmail)
}

func (s *NoteService) Update(ctx context.Context, ownerEmail, id string, in NoteInput) (*entity.Note, error) {
	// A malformed id must look the same as a missing one.
	if uuid.Validate(id) != nil {
		return nil, ErrNoteNotFound
	}
	n := &entity.Note{
		ID:         id,
		OwnerEmail: ownerEmail,
		Title:      in.Title,
		Content:    in.Content,
		Category:   in.Category,
	}
	if err := s.Repo.Update(ctx, n); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	_ = s.indexNote(ctx, n)
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, ownerEmail, id string) error {
	if uuid.Validate(id) != nil {
		return ErrNoteNotFound
	}
	if err := s.Repo.Delete(ctx, id, ownerEmail); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNoteNotFound
		}
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

func (s *NoteService) indexNote(ctx context.Context, n *entity.Note) error {
	if s.ES == nil || s.ESNotesIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          n.ID,
		"owner_email": n.OwnerEmail,
		"title":       n.Title,
		"content":     n.Content,
		"category":    n.Category,
		"created_at":  n.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  n.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESNotesIndex, DocumentID: n.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("note_id", n.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("note_id", n.ID).Warn("es index response error")
	}
	return nil
}

func (s *NoteService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESNotesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESNotesIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("note_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match over title/content/category, always filtered by
// the caller's owner_email so one user can never surface another's notes.
func (s *NoteService) Search(ctx context.Context, ownerEmail, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESNotesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "content", "category"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"owner_email": ownerEmail},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESNotesIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
