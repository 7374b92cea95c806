package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func newTestClient(t *testing.T, url string, tokens TokenSource) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: url, Tokens: tokens, Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:8080/api/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", c.baseURL)
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, defaultUserAgent, c.userAgent)

	_, err = New(Config{})
	assert.Error(t, err)

	_, err = New(Config{BaseURL: "not a url"})
	assert.Error(t, err)
}

func TestGetDecodesAndAttachesBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/carbon/metrics", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode(sample{Name: "metrics", Value: 32})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL+"/api", staticToken("tok-123"))

	var out sample
	require.NoError(t, c.Get(context.Background(), "/carbon/metrics", &out))
	assert.Equal(t, sample{Name: "metrics", Value: 32}, out)
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, staticToken(""))
	assert.NoError(t, c.Get(context.Background(), "health", nil))

	c = newTestClient(t, server.URL, nil)
	assert.NoError(t, c.Get(context.Background(), "/health", nil))
}

func TestPostSendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in sample
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.Value *= 2
		json.NewEncoder(w).Encode(in)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)

	var out sample
	require.NoError(t, c.Post(context.Background(), "/carbon/offset", sample{Name: "offset", Value: 2.5}, &out))
	assert.Equal(t, 5.0, out.Value)
}

func TestHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"json message", http.StatusNotFound, `{"message":"path not found"}`, "path not found"},
		{"json error", http.StatusUnauthorized, `{"error":"invalid token"}`, "invalid token"},
		{"plain text", http.StatusInternalServerError, "boom\n", "boom"},
		{"empty", http.StatusBadGateway, "", ""},
		{"long body cut on a rune boundary", http.StatusBadGateway, strings.Repeat("a", 199) + "éééé", strings.Repeat("a", 199)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newTestClient(t, server.URL, nil).Get(context.Background(), "/x", nil)

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.Equal(t, KindHTTP, Kind(err))
			assert.True(t, IsStatus(err, tt.status))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ab", truncate("abcd", 2))
	// "é" is two bytes; cutting inside it backs off to the rune start.
	assert.Equal(t, "a", truncate("aé", 2))
	assert.Equal(t, "aé", truncate("aé", 3))
	assert.Equal(t, "", truncate("€", 2))
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := newTestClient(t, url, nil).Get(context.Background(), "/carbon/history", nil)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "GET /carbon/history", netErr.Op)
	assert.Equal(t, KindNetwork, Kind(err))
}

func TestTimeoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL, Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/slow", nil)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, KindTimeout, Kind(err))
}

func TestCanceledContextIsNotANetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestClient(t, server.URL, nil).Get(ctx, "/carbon/metrics", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, KindCanceled, Kind(err))
}

func TestDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	var out sample
	err := newTestClient(t, server.URL, nil).Get(context.Background(), "/x", &out)
	require.Error(t, err)
	assert.Equal(t, KindUnknown, Kind(err))
}

type kindedErr struct{}

func (kindedErr) Error() string   { return "bad form" }
func (kindedErr) Kind() ErrorKind      { return KindValidation }

func TestKind(t *testing.T) {
	assert.Equal(t, ErrorKind(""), Kind(nil))
	assert.Equal(t, KindValidation, Kind(kindedErr{}))
	assert.Equal(t, KindTimeout, Kind(context.DeadlineExceeded))
	assert.Equal(t, KindUnknown, Kind(errors.New("other")))
}
