package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/config"
	"github.com/2beens/gymtracker/internal/gymstats/stats"
	"github.com/2beens/gymtracker/internal/health"
)

const testToken = "test-token"

func newTestServer(t *testing.T) (*Server, *mux.Router, redismock.ClientMock) {
	t.Helper()

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectPing().SetVal("PONG")

	allowList, err := auth.NewAllowList(map[string]string{"jeet": "jeet@123"}, bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Host:                        "localhost",
		Port:                        9000,
		StorageBackend:              config.StorageLocal,
		LocalStorageKind:            config.LocalKindFile,
		LocalStorageDir:             t.TempDir(),
		PrometheusMetricsHost:       "localhost",
		PrometheusMetricsPort:       "2112",
		LoginRateLimitAllowedPerMin: 10,
		SessionTTL:                  "1h",
		SessionCleanupSchedule:      "@every 8h",
		PasswordHashCost:            bcrypt.MinCost,
		StatsCacheSizeMB:            1,
		MaxBodyBytes:                1 << 20,
	}

	server, err := NewServer(context.Background(), NewServerParams{
		Config:      cfg,
		VersionInfo: "test",
		AllowList:   allowList,
		RedisClient: rdb,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		server.sessionCleanup.Stop()
	})

	router, err := server.routerSetup()
	require.NoError(t, err)

	return server, router, redisMock
}

func expectSession(redisMock redismock.ClientMock) {
	session, _ := json.Marshal(map[string]any{
		"userId":    "u_jeet",
		"username":  "jeet",
		"createdAt": time.Now().Unix(),
	})
	redisMock.ExpectGet("gymtracker-session||" + testToken).SetVal(string(session))
}

func doRequest(router http.Handler, method, target string, body any, token string) *httptest.ResponseRecorder {
	var reqBody bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&reqBody).Encode(body)
	}
	req := httptest.NewRequest(method, target, &reqBody)
	req.Header.Set("User-Agent", "test-agent")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestServer_PublicAndProtectedRoutes(t *testing.T) {
	_, router, redisMock := newTestServer(t)

	redisMock.ExpectPing().SetVal("PONG")
	rec := doRequest(router, "GET", "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var status health.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Healthy)
	assert.Equal(t, config.StorageLocal, status.Backend)

	// no database behind the local backend
	rec = doRequest(router, "GET", "/health/db", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, path := range []string{"/schedule", "/gymstats/sessions", "/gymstats/stats/summary", "/diet/plan", "/nope"} {
		rec = doRequest(router, "GET", path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	expectSession(redisMock)
	rec = doRequest(router, "GET", "/nope", nil, testToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	expectSession(redisMock)
	rec = doRequest(router, "GET", "/schedule/today", nil, testToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestServer_LoggedExerciseInvalidatesStats(t *testing.T) {
	server, router, redisMock := newTestServer(t)

	logExercise := func(name, bodyPart string, reps int, weight float64) {
		expectSession(redisMock)
		rec := doRequest(router, "POST", "/gymstats/exercises", map[string]any{
			"exerciseName": name,
			"bodyPart":     bodyPart,
			"sets":         []map[string]any{{"reps": reps, "weight": weight}},
		}, testToken)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	summary := func() stats.Summary {
		expectSession(redisMock)
		rec := doRequest(router, "GET", "/gymstats/stats/summary?range=all", nil, testToken)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var s stats.Summary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
		return s
	}

	logExercise("Bench", "chest", 10, 40)
	s := summary()
	assert.Equal(t, 1, s.TotalExercises)
	assert.Equal(t, 400.0, s.TotalVolume)

	// served from the cache until the next write
	s = summary()
	assert.Equal(t, 400.0, s.TotalVolume)
	assert.Equal(t, 1.0, testutil.ToFloat64(server.metricsManager.CounterStatsCache.WithLabelValues("hit")))

	logExercise("Squat", "legs", 5, 100)
	s = summary()
	assert.Equal(t, 2, s.TotalExercises)
	assert.Equal(t, 2, s.BodyPartsWorked)
	assert.Equal(t, 900.0, s.TotalVolume)

	assert.Equal(t, 2.0, testutil.ToFloat64(server.metricsManager.CounterLoggedSets))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestServer_ExportAndDiet(t *testing.T) {
	_, router, redisMock := newTestServer(t)

	expectSession(redisMock)
	rec := doRequest(router, "GET", "/gymstats/export/data?range=week", nil, testToken)
	require.Equal(t, http.StatusOK, rec.Code)
	today := time.Now().Format("2006-01-02")
	assert.Equal(t,
		fmt.Sprintf(`attachment; filename="gym_data_jeet_%s.xlsx"`, today),
		rec.Header().Get("Content-Disposition"),
	)

	expectSession(redisMock)
	rec = doRequest(router, "POST", "/diet/day/today/water", nil, testToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"waterLiters":0.25`)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestServer_ConnStateMetrics(t *testing.T) {
	server, _, _ := newTestServer(t)

	server.connStateMetrics(nil, http.StateNew)
	server.connStateMetrics(nil, http.StateNew)
	server.connStateMetrics(nil, http.StateActive)
	server.connStateMetrics(nil, http.StateClosed)
	assert.Equal(t, 1.0, testutil.ToFloat64(server.metricsManager.GaugeOpenConnections))
}
