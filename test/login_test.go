package test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymtracker/internal/auth"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.redisDataCleanup(ctx))

	cases := map[string]struct {
		creds              auth.Credentials
		expectedStatusCode int
		expectedBody       string
	}{
		"good creds": {
			creds:              auth.Credentials{Username: testUsername, Password: testPassword},
			expectedStatusCode: http.StatusOK,
		},
		"username is case insensitive": {
			creds:              auth.Credentials{Username: " JEET ", Password: testPassword},
			expectedStatusCode: http.StatusOK,
		},
		"bad password": {
			creds:              auth.Credentials{Username: testUsername, Password: "bad-password"},
			expectedStatusCode: http.StatusUnauthorized,
			expectedBody:       "error, wrong credentials",
		},
		"unknown user": {
			creds:              auth.Credentials{Username: "guest", Password: "guest"},
			expectedStatusCode: http.StatusUnauthorized,
			expectedBody:       "error, wrong credentials",
		},
		"empty password": {
			creds:              auth.Credentials{Username: testUsername},
			expectedStatusCode: http.StatusBadRequest,
			expectedBody:       "error, password empty",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			code, body := doRequest(ctx, t, s.httpClient, "POST", "/a/login", "", tc.creds)
			require.Equal(t, tc.expectedStatusCode, code, string(body))
			if tc.expectedBody != "" {
				assert.Equal(t, tc.expectedBody, strings.TrimSpace(string(body)))
				return
			}

			var loginResp auth.LoginResult
			require.NoError(t, json.Unmarshal(body, &loginResp))
			assert.NotEmpty(t, loginResp.Token)
			assert.Equal(t, testUsername, loginResp.User.Username)
		})
	}

	// a failed login never creates the account
	var users int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE username = 'guest'`).Scan(&users))
	assert.Zero(t, users)

	t.Run("logout ends the session", func(t *testing.T) {
		token := doLogin(ctx, t, s.httpClient, testUsername, testPassword)

		code, _ := doRequest(ctx, t, s.httpClient, "GET", "/a/me", token, nil)
		require.Equal(t, http.StatusOK, code)

		code, _ = doRequest(ctx, t, s.httpClient, "GET", "/a/logout", token, nil)
		require.Equal(t, http.StatusOK, code)

		code, _ = doRequest(ctx, t, s.httpClient, "GET", "/a/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("rate limiting", func(t *testing.T) {
		require.NoError(t, s.redisDataCleanup(ctx))

		// config allows 10 login attempts per minute
		for i := 1; i <= 15; i++ {
			code, _ := doRequest(ctx, t, s.httpClient, "POST", "/a/login", "", auth.Credentials{
				Username: testUsername,
				Password: "brute-force",
			})
			if i <= 10 {
				require.Equal(t, http.StatusUnauthorized, code, "iteration: %d", i)
			} else {
				require.Equal(t, http.StatusTooManyRequests, code, "iteration: %d", i)
			}
		}

		require.NoError(t, s.redisDataCleanup(ctx))
	})
}
