package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/kabak/internal/api"
	"github.com/mcoot/kabak/internal/api/apierr"
	"github.com/mcoot/kabak/internal/api/handler"
	"github.com/mcoot/kabak/internal/api/middleware"
	"github.com/mcoot/kabak/internal/api/response"
	"github.com/mcoot/kabak/internal/factory"
	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/testutil"
)

const admin = string(factory.TestAdminID)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

type serverOption func(*api.RouterConfig)

func withAdminToken(t *testing.T, token string) serverOption {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.MinCost)
	require.NoError(t, err)
	return func(cfg *api.RouterConfig) {
		cfg.AdminTokenHash = string(hash)
	}
}

func withRules(path string) serverOption {
	return func(cfg *api.RouterConfig) {
		cfg.RulesPath = path
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	require.NoError(t, app.LoadTestDictionary())
	t.Cleanup(func() { _ = app.Close() })

	cfg := api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		HubManager:     app.HubManager,
		Alert:          app.Dispatcher.AlertAdmin,
		RulesPath:      filepath.Join(t.TempDir(), "missing.txt"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &testServer{
		handler: api.NewRouter(cfg),
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, playerID string, headers ...string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if playerID != "" {
		req.Header.Set(middleware.HeaderPlayerID, playerID)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierr.ErrorResponse](t, rr).Error.Code
}

// startGame joins alice and bob and begins; the mock shuffle keeps id order
func startGame(t *testing.T, ts *testServer) {
	t.Helper()
	join(t, ts, "alice", "Alice")
	join(t, ts, "bob", "Bob")
	rr := ts.request(http.MethodPost, "/api/v1/begin", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func join(t *testing.T, ts *testServer, id, name string) response.JoinResponse {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/join", nil, id, middleware.HeaderPlayerName, name)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.JoinResponse](t, rr)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := decode[response.Health](t, rr)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, string(model.SessionNotStarted), resp.Session.Status)
	assert.Equal(t, 3, resp.Session.Locations)
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.NotEmpty(t, rr.Header().Get(middleware.HeaderRequestID))

	rr = ts.request(http.MethodGet, "/api/v1/health", nil, "", middleware.HeaderRequestID, "req-42")
	assert.Equal(t, "req-42", rr.Header().Get(middleware.HeaderRequestID))
}

func TestIdentityRequired(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/v1/menu", "/api/v1/leaderboard", "/api/v1/locations", "/api/v1/steal"} {
		rr := ts.request(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
	rr := ts.request(http.MethodPost, "/api/v1/join", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJoin(t *testing.T) {
	ts := newTestServer(t)

	resp := join(t, ts, "alice", "Alice")
	assert.Equal(t, "alice", resp.Player.ID)
	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.Equal(t, 0, resp.Player.Score)
	assert.False(t, resp.AlreadyJoined)

	// Joining again is informational
	rr := ts.request(http.MethodPost, "/api/v1/join", map[string]string{"display_name": "Other"}, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)
	again := decode[response.JoinResponse](t, rr)
	assert.True(t, again.AlreadyJoined)
	assert.Equal(t, "Alice", again.Player.DisplayName)

	// Body name wins over the header
	rr = ts.request(http.MethodPost, "/api/v1/join", map[string]string{"display_name": "Bobby"}, "bob", middleware.HeaderPlayerName, "Bob")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Bobby", decode[response.JoinResponse](t, rr).Player.DisplayName)

	rr = ts.request(http.MethodPost, "/api/v1/join", nil, admin)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeAdminCannotJoin, errorCode(t, rr))
}

func TestJoinRejectsMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/join", strings.NewReader("{not json"))
	req.Header.Set(middleware.HeaderPlayerID, "alice")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestBeginIsAdminOnly(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/begin", nil, admin)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNoPlayers, errorCode(t, rr))

	join(t, ts, "alice", "Alice")
	rr = ts.request(http.MethodPost, "/api/v1/begin", nil, "alice")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeAdminOnly, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/begin", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[response.BeginResponse](t, rr)
	assert.Equal(t, "alice", resp.First.ID)
	assert.Equal(t, []string{"alice"}, resp.Order)
}

func TestAdminTokenGuardsAdminRoutes(t *testing.T) {
	ts := newTestServer(t, withAdminToken(t, "s3cret"))
	join(t, ts, "alice", "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/begin", nil, admin)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/begin", nil, admin, "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/begin", nil, admin, "Authorization", "Bearer s3cret")
	assert.Equal(t, http.StatusOK, rr.Code)

	// Player routes are unaffected
	rr = ts.request(http.MethodGet, "/api/v1/menu", nil, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminTokenGuardsAdminViews(t *testing.T) {
	ts := newTestServer(t, withAdminToken(t, "s3cret"))
	join(t, ts, "alice", "Alice")
	bearer := []string{"Authorization", "Bearer s3cret"}

	for _, path := range []string{"/api/v1/locations/1", "/api/v1/locations", "/api/v1/leaderboard", "/api/v1/menu"} {
		rr := ts.request(http.MethodGet, path, nil, admin)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
		assert.NotContains(t, rr.Body.String(), "КАБАК", path)

		rr = ts.request(http.MethodGet, path, nil, admin, "Authorization", "Bearer wrong")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}

	rr := ts.request(http.MethodGet, "/api/v1/locations/1", nil, admin, bearer...)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "КАБАК", decode[response.LocationDetail](t, rr).SecretWord)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard", nil, admin, bearer...)
	assert.Equal(t, http.StatusOK, rr.Code)

	// A player sending a token is still a player
	rr = ts.request(http.MethodPost, "/api/v1/begin", nil, "alice", bearer...)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeAdminOnly, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/begin", nil, admin, bearer...)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodGet, "/api/v1/locations/1", nil, "alice")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[response.LocationDetail](t, rr).SecretWord)
}

func TestMenu(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/menu", nil, "alice")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotRegistered, errorCode(t, rr))

	join(t, ts, "alice", "Alice")
	rr = ts.request(http.MethodGet, "/api/v1/menu", nil, "alice")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNotStarted, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/menu", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)
	adminMenu := decode[response.Menu](t, rr)
	assert.True(t, adminMenu.IsAdmin)
	assert.True(t, adminMenu.CanViewScores)

	join(t, ts, "bob", "Bob")
	rr = ts.request(http.MethodPost, "/api/v1/begin", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/menu", nil, "alice")
	require.Equal(t, http.StatusOK, rr.Code)
	menu := decode[response.Menu](t, rr)
	assert.True(t, menu.IsMyTurn)
	assert.True(t, menu.CanGuess)
	assert.False(t, menu.CanSteal)
	require.NotNil(t, menu.Current)
	assert.Equal(t, "alice", menu.Current.ID)

	rr = ts.request(http.MethodGet, "/api/v1/menu", nil, "bob")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decode[response.Menu](t, rr).IsMyTurn)
}

func TestFullGameFlow(t *testing.T) {
	ts := newTestServer(t)
	startGame(t, ts)

	// Bob is not the turn holder
	rr := ts.request(http.MethodPost, "/api/v1/locations/1/guess", map[string]string{"word": "кабан"}, "bob")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotYourTurn, errorCode(t, rr))

	// Alice guesses close to the Tavern word
	rr = ts.request(http.MethodPost, "/api/v1/locations/1/guess", map[string]string{"word": "кабан"}, "alice")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	guess := decode[response.GuessResponse](t, rr)
	assert.Equal(t, 40, guess.Points)
	assert.False(t, guess.Solved)
	assert.Equal(t, "bob", guess.Next)
	assert.Equal(t, []string{"exact", "exact", "exact", "exact", "absent"}, guess.Matches)
	assert.NotEmpty(t, guess.Verdict)

	// The same word cannot be tried twice in a row
	rr = ts.request(http.MethodPost, "/api/v1/locations/1/guess", map[string]string{"word": "КАБАН"}, "bob")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeDuplicateGuess, errorCode(t, rr))

	// Bob solves it
	rr = ts.request(http.MethodPost, "/api/v1/locations/1/guess", map[string]string{"word": "КАБАК"}, "bob")
	require.Equal(t, http.StatusOK, rr.Code)
	solved := decode[response.GuessResponse](t, rr)
	assert.True(t, solved.Solved)
	assert.Equal(t, 50, solved.Points)
	assert.Equal(t, "alice", solved.Next)

	rr = ts.request(http.MethodPost, "/api/v1/locations/1/guess", map[string]string{"word": "ВОДКА"}, "alice")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeLocationClosed, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/locations/open", nil, "alice")
	require.Equal(t, http.StatusOK, rr.Code)
	open := decode[response.Locations](t, rr)
	require.Len(t, open.Locations, 2)
	assert.Equal(t, 2, open.Locations[0].ID)

	// Alice can now rob Bob; the mocked die shows 5
	rr = ts.request(http.MethodGet, "/api/v1/steal", nil, "alice")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	opts := decode[response.StealOptionsResponse](t, rr)
	require.Len(t, opts.Targets, 1)
	assert.Equal(t, "bob", opts.Targets[0].ID)

	ts.app.MockRandom.QueueIntn(4)
	rr = ts.request(http.MethodPost, "/api/v1/steal/bob", nil, "alice")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	steal := decode[response.StealResponse](t, rr)
	assert.Equal(t, 5, steal.Die)
	assert.True(t, steal.Success)
	assert.Equal(t, 50, steal.Thief.Score)
	assert.Equal(t, 40, steal.Victim.Score)
	assert.Equal(t, "bob", steal.Next)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard", nil, "bob")
	require.Equal(t, http.StatusOK, rr.Code)
	lb := decode[response.Leaderboard](t, rr)
	require.Len(t, lb.Entries, 2)
	assert.Equal(t, "alice", lb.Entries[0].Player.ID)
	assert.True(t, lb.Entries[1].IsCurrent)
	assert.Contains(t, lb.Table, "Alice")
}

func TestRobberyNotifiesVictim(t *testing.T) {
	ts := newTestServer(t)
	startGame(t, ts)

	rr := ts.request(http.MethodPost, "/api/v1/locations/1/guess", map[string]string{"word": "КАБАН"}, "alice")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/locations/1/guess", map[string]string{"word": "КАБАК"}, "bob")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/steal/bob", nil, "alice")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decode[response.StealResponse](t, rr).Success)

	assert.Eventually(t, func() bool {
		for _, n := range ts.app.Notifications.OfType(model.NotifyRobbed) {
			if n.To == "bob" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestStealTargetErrors(t *testing.T) {
	ts := newTestServer(t)
	startGame(t, ts)

	rr := ts.request(http.MethodGet, "/api/v1/steal", nil, "alice")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNoEligibleTarget, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/steal/alice", nil, "alice")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidTarget, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/steal/"+admin, nil, "alice")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidTarget, errorCode(t, rr))
}

func TestGuessValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/locations/1/guess", map[string]string{"word": "КАБАК"}, "alice")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNotStarted, errorCode(t, rr))

	startGame(t, ts)

	tests := []struct {
		name   string
		path   string
		word   string
		status int
		code   string
	}{
		{"too short", "/api/v1/locations/1/guess", "КОТ", http.StatusBadRequest, apierr.CodeInvalidLength},
		{"unknown word", "/api/v1/locations/1/guess", "ЫЫЫЫЫ", http.StatusUnprocessableEntity, apierr.CodeNotInDictionary},
		{"unknown location", "/api/v1/locations/99/guess", "КАБАК", http.StatusNotFound, apierr.CodeLocationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, tt.path, map[string]string{"word": tt.word}, "alice")
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, errorCode(t, rr))
		})
	}
}

func TestLocationDetail(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/locations/2", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)
	adminView := decode[response.LocationDetail](t, rr)
	assert.Equal(t, "Cellar", adminView.Name)
	assert.Equal(t, "cellar.jpg", adminView.ImageRef)
	assert.Equal(t, "ВОДКА", adminView.SecretWord)
	assert.Nil(t, adminView.LastAttempt)

	startGame(t, ts)
	rr = ts.request(http.MethodPost, "/api/v1/locations/2/guess", map[string]string{"word": "ЛОДКА"}, "alice")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/locations/2", nil, "bob")
	require.Equal(t, http.StatusOK, rr.Code)
	view := decode[response.LocationDetail](t, rr)
	assert.Empty(t, view.SecretWord)
	require.NotNil(t, view.LastAttempt)
	assert.Equal(t, "alice", view.LastAttempt.PlayerID)
	assert.Equal(t, "ЛОДКА", view.LastAttempt.Word)
	assert.Equal(t, []string{"absent", "exact", "exact", "exact", "exact"}, view.LastAttempt.Matches)

	rr = ts.request(http.MethodGet, "/api/v1/locations/42", nil, "bob")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBoard(t *testing.T) {
	ts := newTestServer(t)
	join(t, ts, "alice", "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/locations", nil, "alice")
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/locations", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)
	board := decode[response.Locations](t, rr)
	require.Len(t, board.Locations, 3)
	assert.Equal(t, "Tavern", board.Locations[0].Name)
	assert.False(t, board.Locations[0].Closed)
}

func TestLeaderboardVisibility(t *testing.T) {
	ts := newTestServer(t)
	join(t, ts, "alice", "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard", nil, "alice")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNotStarted, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)
	lb := decode[response.Leaderboard](t, rr)
	assert.Equal(t, string(model.SessionNotStarted), lb.Status)
	assert.Len(t, lb.Entries, 1)
}

func TestReset(t *testing.T) {
	ts := newTestServer(t)
	startGame(t, ts)

	rr := ts.request(http.MethodPost, "/api/v1/reset", nil, "alice")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/reset", nil, admin)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/menu", nil, "alice")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotRegistered, errorCode(t, rr))
}

func TestRules(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rules", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{handler.RulesPlaceholder}, decode[response.Rules](t, rr).Chunks)

	path := filepath.Join(t.TempDir(), "rules.txt")
	line := strings.Repeat("я", 99) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat(line, 81)), 0o644))

	ts = newTestServer(t, withRules(path))
	rr = ts.request(http.MethodGet, "/api/v1/rules", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	chunks := decode[response.Rules](t, rr).Chunks
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), handler.MaxRuleChunk)
	}
	assert.Equal(t, strings.TrimSpace(strings.Repeat(line, 81)), strings.Join(chunks, ""))
}
