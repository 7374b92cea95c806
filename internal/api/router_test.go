package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/isdelr/ecolearn/internal/apiclient"
	"github.com/isdelr/ecolearn/internal/auth"
	"github.com/isdelr/ecolearn/internal/config"
	"github.com/isdelr/ecolearn/internal/fixtures"
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/pages"
	"github.com/isdelr/ecolearn/internal/services"
	ws "github.com/isdelr/ecolearn/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T, rps float64, burst int) *httptest.Server {
	t.Helper()
	store, err := fixtures.NewStore()
	require.NoError(t, err)
	cfg := &config.Config{
		TokenTTL:       time.Hour,
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}
	hub := ws.NewHub()
	go hub.Run()
	srv := httptest.NewServer(NewRouter(cfg, store, fixtures.NewIssuer(testSecret, time.Hour), hub, NewRateLimiter(rps, burst)))
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Stop)
	return srv
}

func newRemoteSession(t *testing.T, baseURL string) (*auth.Session, *apiclient.Client) {
	t.Helper()
	cred := auth.NewCredential()
	client, err := apiclient.New(apiclient.Config{BaseURL: baseURL + "/api", Tokens: cred})
	require.NoError(t, err)
	return auth.NewSession(services.NewAuthService(client), auth.NewMemoryStore(""), cred), client
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, 100, 100)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
	assert.Contains(t, string(body), `"uptime"`)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ecolearn_fixture_http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, 100, 100)

	resp, err := http.Get(srv.URL + "/api/carbon/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/carbon/metrics", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRemoteClientEndToEnd(t *testing.T) {
	srv := newTestServer(t, 100, 100)
	session, client := newRemoteSession(t, srv.URL)
	ctx := context.Background()

	_, err := session.Login(ctx, models.Credentials{Email: fixtures.DemoEmail, Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.False(t, session.IsAuthenticated())

	user, err := session.Login(ctx, models.Credentials{Email: fixtures.DemoEmail, Password: fixtures.DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, fixtures.DemoEmail, user.Email)
	assert.True(t, session.IsAuthenticated())

	carbon := services.NewCarbonService(client)
	learning := services.NewLearningService(client)

	dash := pages.NewDashboard(carbon, session).Mount(ctx)
	require.Equal(t, pages.Ready, dash.Status, "%v", dash.Err)
	assert.Equal(t, 32.0, dash.Data.TotalCarbon)

	history := pages.NewPlantations(carbon)
	require.Equal(t, pages.Ready, history.Mount(ctx).Status)
	assert.Equal(t, 4, history.Summary().Contributions)

	offset, err := carbon.OffsetCarbon(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, offset.Record.Trees)
	assert.Equal(t, models.StatusInProgress, offset.Record.Status)

	calc, err := carbon.CalculateCarbon(ctx, models.SessionData{DurationHours: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.035, calc.SessionCarbon, 1e-9)

	list := pages.NewLearning(learning)
	list.Mount(ctx)
	_, err = list.Generate(ctx, "Composting", models.LevelBeginner)
	require.NoError(t, err)
	assert.Len(t, list.Snapshot().Data, 4)

	personalized, err := learning.PersonalizePath(ctx, "2", models.PathPreferences{Level: models.LevelAdvanced})
	require.NoError(t, err)
	assert.Equal(t, models.LevelAdvanced, personalized.Level)

	lesson := pages.NewLesson(learning, "1")
	require.Equal(t, pages.Ready, lesson.Mount(ctx).Status)
	_, total, _ := lesson.Progress()
	assert.Equal(t, 3, total)

	_, err = learning.GetPathByID(ctx, "missing")
	assert.True(t, apiclient.IsStatus(err, http.StatusNotFound))

	me, err := services.NewAuthService(client).Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixtures.DemoUserID, me.ID)
}

func TestRegisterOverHTTP(t *testing.T) {
	srv := newTestServer(t, 100, 100)
	session, _ := newRemoteSession(t, srv.URL)

	user, err := session.Register(context.Background(), models.RegisterForm{
		Name: "Jane", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
	assert.False(t, session.IsAuthenticated())

	_, err = session.Register(context.Background(), models.RegisterForm{
		Name: "Jane", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.True(t, apiclient.IsStatus(err, http.StatusConflict))

	_, err = session.Login(context.Background(), models.Credentials{Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, 0.001, 2)

	var codes []int
	for i := 0; i < 3; i++ {
		resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests {
			assert.NotEmpty(t, resp.Header.Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.limiter("ip:10.0.0.1", false)
	rl.limiter("ip:10.0.0.2", true)
	now = now.Add(5 * time.Minute)
	rl.limiter("ip:10.0.0.3", false)
	assert.Equal(t, 3, rl.Cleanup(10*time.Minute))

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, rl.Cleanup(10*time.Minute))
	_, kept := rl.limiters["ip:10.0.0.3"]
	assert.True(t, kept)

	// A client seen again is kept.
	rl.limiter("ip:10.0.0.3", false)
	now = now.Add(9 * time.Minute)
	assert.Equal(t, 1, rl.Cleanup(10*time.Minute))
}

func TestRateLimiterStartCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.limiter("ip:10.0.0.1", false)

	stop := rl.StartCleanup(10*time.Millisecond, 0)
	defer stop()
	assert.Eventually(t, func() bool {
		rl.mu.Lock()
		defer rl.mu.Unlock()
		return len(rl.limiters) == 0
	}, time.Second, 10*time.Millisecond)
	stop()
}

func TestIsSensitiveEndpoint(t *testing.T) {
	assert.True(t, isSensitiveEndpoint("/api/learning/generate"))
	assert.True(t, isSensitiveEndpoint("/api/carbon/calculate"))
	assert.False(t, isSensitiveEndpoint("/api/carbon/metrics"))
}

func TestEventsFeed(t *testing.T) {
	srv := newTestServer(t, 100, 100)
	token, err := fixtures.NewIssuer(testSecret, time.Hour).Issue(models.User{ID: fixtures.DemoUserID, Email: fixtures.DemoEmail})
	require.NoError(t, err)
	header := http.Header{"Authorization": {"Bearer " + token}}
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/carbon/offset", strings.NewReader(`{"amount":10}`))
	req.Header = header.Clone()
	req.Header.Set("Content-Type", "application/json")
	offset, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	offset.Body.Close()
	require.Equal(t, http.StatusCreated, offset.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, ws.ActionPlantingOrdered, msg.Action)
	payload, ok := msg.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), payload["trees"])
}
