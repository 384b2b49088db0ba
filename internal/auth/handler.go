package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

const TokenHeader = "X-GYM-TOKEN"

type Handler struct {
	authService    *Service
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(authService *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		authService:    authService,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// SetupRoutes registers the login subrouter; extra middlewares (rate limit)
// are applied to it only.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router, mws ...mux.MiddlewareFunc) {
	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/login", handler.HandleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", handler.HandleLogout).
		Methods("GET", "POST", "OPTIONS").Name("logout")
	loginSubrouter.
		HandleFunc("/me", handler.HandleMe).
		Methods("GET", "OPTIONS").Name("me")

	loginSubrouter.Use(mws...)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	var creds Credentials
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			log.Tracef("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusBadRequest)
			return
		}
		creds = Credentials{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if creds.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if creds.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	result, err := handler.authService.Login(ctx, creds, handler.now())
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		log.Tracef("failed login attempt for user: %s", creds.Username)
		handler.countLogin("invalid")
		http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
		return
	case errors.Is(err, ErrAccountCreationFailed):
		log.Errorf("login [%s]: %s", creds.Username, err)
		handler.countLogin("account_error")
		http.Error(w, "error, failed to create account", http.StatusInternalServerError)
		return
	case err != nil:
		log.Errorf("login [%s]: %s", creds.Username, err)
		handler.countLogin("error")
		http.Error(w, "error, login failed", http.StatusInternalServerError)
		return
	}

	handler.countLogin("ok")
	pkg.WriteJSONResponseOK(w, result)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	authToken := r.Header.Get(TokenHeader)
	if authToken == "" {
		http.Error(w, "error, no token", http.StatusBadRequest)
		return
	}

	if err := handler.authService.Logout(ctx, authToken); err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "error, logout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	pkg.WriteJSONResponseOK(w, session)
}

func (handler *Handler) countLogin(outcome string) {
	if handler.metricsManager != nil {
		handler.metricsManager.CounterLogins.WithLabelValues(outcome).Inc()
	}
}
