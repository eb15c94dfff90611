package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/notes-api/internal/application"
	"github.com/oksasatya/notes-api/internal/domain/entity"
	"github.com/oksasatya/notes-api/internal/domain/repository"
	"github.com/oksasatya/notes-api/internal/interface/middleware"
	"github.com/oksasatya/notes-api/pkg/helpers"
	"github.com/oksasatya/notes-api/pkg/validation"
)

// In-memory repositories standing in for the postgres implementations. They
// honor the same contracts: duplicate email rejection and owner-scoped note
// lookups where a foreign owner is indistinguishable from a missing id.

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{byEmail: map[string]*entity.User{}} }

func (m *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) DeleteByEmail(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byEmail, email)
	return nil
}

type memNoteRepo struct {
	mu    sync.Mutex
	notes map[string]*entity.Note
}

func newMemNoteRepo() *memNoteRepo { return &memNoteRepo{notes: map[string]*entity.Note{}} }

func (m *memNoteRepo) Create(ctx context.Context, n *entity.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	cp := *n
	m.notes[n.ID] = &cp
	return nil
}

func (m *memNoteRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Note, 0)
	for _, n := range m.notes {
		if n.OwnerEmail == ownerEmail {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memNoteRepo) Update(ctx context.Context, n *entity.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.notes[n.ID]
	if !ok || stored.OwnerEmail != n.OwnerEmail {
		return repository.ErrNotFound
	}
	stored.Title = n.Title
	stored.Content = n.Content
	stored.Category = n.Category
	stored.UpdatedAt = time.Now()
	n.CreatedAt = stored.CreatedAt
	n.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *memNoteRepo) Delete(ctx context.Context, id, ownerEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.notes[id]
	if !ok || stored.OwnerEmail != ownerEmail {
		return repository.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

// newTestServer wires the real handlers, middleware and services over the
// in-memory repositories, mirroring router.InitModules.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	authSvc := application.NewAuthService(newMemUserRepo(), jwt, nil, nil, "notes-api", false)
	noteSvc := application.NewNoteService(newMemNoteRepo(), nil, nil, "")

	ah := NewAuthHandler(authSvc, nil)
	nh := NewNoteHandler(noteSvc, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/signup", ah.Signup)
	api.POST("/login", ah.Login)

	auth := api.Group("/")
	auth.Use(middleware.Auth(jwt))
	auth.GET("/profile", ah.GetProfile)
	auth.DELETE("/delete-user", ah.DeleteUser)

	notes := api.Group("/notes")
	notes.Use(middleware.Auth(jwt))
	notes.POST("", nh.Create)
	notes.GET("", nh.List)
	notes.GET("/search", nh.Search)
	notes.PUT("/:id", nh.Update)
	notes.DELETE("/:id", nh.Delete)

	return r
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func signupAndLogin(t *testing.T, r *gin.Engine, name, email, password string) string {
	t.Helper()
	w, _ := doRequest(t, r, http.MethodPost, "/api/signup", "", gin.H{"name": name, "email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doRequest(t, r, http.MethodPost, "/api/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}
