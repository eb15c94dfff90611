package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type noteJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createNote(t *testing.T, r *gin.Engine, token string, body gin.H) noteJSON {
	t.Helper()
	w, env := doRequest(t, r, http.MethodPost, "/api/notes", token, body)
	require.Equal(t, http.StatusOK, w.Code)
	var n noteJSON
	require.NoError(t, json.Unmarshal(env.Data, &n))
	require.NotEmpty(t, n.ID)
	return n
}

func listNotes(t *testing.T, r *gin.Engine, token string) []noteJSON {
	t.Helper()
	w, env := doRequest(t, r, http.MethodGet, "/api/notes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notes []noteJSON
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &notes))
	}
	return notes
}

func TestNotes_RequireAuth(t *testing.T) {
	r := newTestServer(t)

	w, _ := doRequest(t, r, http.MethodGet, "/api/notes", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doRequest(t, r, http.MethodPost, "/api/notes", "", gin.H{"title": "T"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotes_CreateListRoundTrip(t *testing.T) {
	r := newTestServer(t)
	token := signupAndLogin(t, r, "Alice", "a@x.com", "pw1")

	created := createNote(t, r, token, gin.H{"title": "T", "content": "C", "category": "work"})
	require.Equal(t, "T", created.Title)
	require.False(t, created.CreatedAt.IsZero())
	require.False(t, created.UpdatedAt.IsZero())

	notes := listNotes(t, r, token)
	require.Len(t, notes, 1)
	require.Equal(t, created.ID, notes[0].ID)
	require.Equal(t, "T", notes[0].Title)
	require.Equal(t, "C", notes[0].Content)
	require.Equal(t, "work", notes[0].Category)
}

func TestNotes_CreateWithoutFieldsSucceeds(t *testing.T) {
	r := newTestServer(t)
	token := signupAndLogin(t, r, "Alice", "a@x.com", "pw1")

	n := createNote(t, r, token, gin.H{})
	require.Empty(t, n.Title)
	require.Empty(t, n.Content)
}

func TestNotes_UpdateReflectsInList(t *testing.T) {
	r := newTestServer(t)
	token := signupAndLogin(t, r, "Alice", "a@x.com", "pw1")

	created := createNote(t, r, token, gin.H{"title": "T", "content": "C"})
	time.Sleep(10 * time.Millisecond)

	w, env := doRequest(t, r, http.MethodPut, "/api/notes/"+created.ID, token, gin.H{"title": "T2", "content": "C2", "category": "home"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated noteJSON
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	notes := listNotes(t, r, token)
	require.Len(t, notes, 1)
	require.Equal(t, "T2", notes[0].Title)
	require.Equal(t, "C2", notes[0].Content)
	require.Equal(t, "home", notes[0].Category)
}

func TestNotes_CrossUserUpdateIs404(t *testing.T) {
	r := newTestServer(t)
	aliceToken := signupAndLogin(t, r, "Alice", "a@x.com", "pw1")
	bobToken := signupAndLogin(t, r, "Bob", "b@x.com", "pw2")

	note := createNote(t, r, aliceToken, gin.H{"title": "T", "content": "C"})

	w, env := doRequest(t, r, http.MethodPut, "/api/notes/"+note.ID, bobToken, gin.H{"title": "hijacked"})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "note not found", env.Message)

	// Alice's note is unchanged.
	notes := listNotes(t, r, aliceToken)
	require.Len(t, notes, 1)
	require.Equal(t, "T", notes[0].Title)
	require.Equal(t, "C", notes[0].Content)
}

func TestNotes_CrossUserDeleteIs404(t *testing.T) {
	r := newTestServer(t)
	aliceToken := signupAndLogin(t, r, "Alice", "a@x.com", "pw1")
	bobToken := signupAndLogin(t, r, "Bob", "b@x.com", "pw2")

	note := createNote(t, r, aliceToken, gin.H{"title": "T"})

	w, _ := doRequest(t, r, http.MethodDelete, "/api/notes/"+note.ID, bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	require.Len(t, listNotes(t, r, aliceToken), 1)

	// Bob only ever sees his own (empty) list.
	require.Empty(t, listNotes(t, r, bobToken))
}

func TestNotes_DeleteThenGone(t *testing.T) {
	r := newTestServer(t)
	token := signupAndLogin(t, r, "Alice", "a@x.com", "pw1")

	note := createNote(t, r, token, gin.H{"title": "T"})

	w, _ := doRequest(t, r, http.MethodDelete, "/api/notes/"+note.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.Empty(t, listNotes(t, r, token))

	w, _ = doRequest(t, r, http.MethodDelete, "/api/notes/"+note.ID, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotes_SearchRequiresQuery(t *testing.T) {
	r := newTestServer(t)
	token := signupAndLogin(t, r, "Alice", "a@x.com", "pw1")

	w, _ := doRequest(t, r, http.MethodGet, "/api/notes/search", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Without Elasticsearch configured search degrades to an empty result.
	w, env := doRequest(t, r, http.MethodGet, "/api/notes/search?q=T", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var hits []map[string]any
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &hits))
	}
	require.Empty(t, hits)
}
