package pastegg

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	var got pasteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/pastes", r.URL.Path)
		assert.Equal(t, "Key sekrit", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Write([]byte(`{"status":"success","result":{"id":"abcdef"}}`))
	}))
	defer server.Close()

	c := New(server.URL, "sekrit")
	url, err := c.Submit("meow in #general on Kittens", []File{
		{Name: "message.md", Content: "hello  \nworld"},
		{Name: "attachment0.md", Content: "[x](x)"},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://paste.gg/abcdef", url)

	assert.Equal(t, "meow in #general on Kittens", got.Name)
	require.Len(t, got.Files, 2)
	assert.Equal(t, "message.md", got.Files[0].Name)
	assert.Equal(t, "text", got.Files[0].Content.Format)
	assert.Equal(t, "hello  \nworld", got.Files[0].Content.Value)
}

func TestSubmitAnonymousOmitsAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success","result":{"id":"xyz"}}`))
	}))
	defer server.Close()

	url, err := New(server.URL, "").Submit("title", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://paste.gg/xyz", url)
}

func TestSubmitServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	url, err := New(server.URL, "").Submit("title", nil)
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestSubmitNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error"}`))
	}))
	defer server.Close()

	url, err := New(server.URL, "").Submit("title", nil)
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestSubmitUnreachable(t *testing.T) {
	// Nothing listens here.
	url, err := New("http://127.0.0.1:1/v1", "").Submit("title", nil)
	assert.Error(t, err)
	assert.Empty(t, url)
}
