package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(apiKey, "ja", 0, 2)
	c.baseURL = srv.URL
	c.backoff = time.Millisecond
	return c
}

func TestClient_Search(t *testing.T) {
	c := newTestClient(t, "k-123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "isbn:9784873119700", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "ja", r.URL.Query().Get("langRestrict"))
		assert.Equal(t, "k-123", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"totalItems":1,"items":[{"id":"vol-1","volumeInfo":{
			"title":"Go言語","authors":["A","B"],"publisher":"O'Reilly",
			"industryIdentifiers":[{"type":"ISBN_13","identifier":"9784873119700"}],
			"imageLinks":{"thumbnail":"http://img/t.jpg"}}}]}`))
	})

	res, err := c.Search(context.Background(), "isbn:9784873119700")
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalItems)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "vol-1", res.Items[0].ID)
	assert.Equal(t, []string{"A", "B"}, res.Items[0].VolumeInfo.Authors)
	require.NotNil(t, res.Items[0].VolumeInfo.ImageLinks)
	assert.Equal(t, "http://img/t.jpg", res.Items[0].VolumeInfo.ImageLinks.Thumbnail)
}

func TestClient_Search_NoKeyNoItems(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["key"]
		assert.False(t, ok)
		_, _ = w.Write([]byte(`{"totalItems":0}`))
	})

	res, err := c.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestClient_GetVolume(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes/vol-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":"vol-1","volumeInfo":{"title":"T"}}`))
	})

	v, err := c.GetVolume(context.Background(), "vol-1")
	require.NoError(t, err)
	assert.Equal(t, "T", v.VolumeInfo.Title)

	_, err = c.GetVolume(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Retries(t *testing.T) {
	t.Run("retries 5xx then succeeds", func(t *testing.T) {
		var calls int32
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"totalItems":0}`))
		})

		_, err := c.Search(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls int32
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := c.Search(context.Background(), "q")
		assert.ErrorContains(t, err, "after 2 retries")
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("does not retry 4xx", func(t *testing.T) {
		var calls int32
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
		})

		_, err := c.Search(context.Background(), "q")
		assert.EqualError(t, err, "unexpected status code: 400")
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
