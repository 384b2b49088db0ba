package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "gymtracker-session||"
	tokensSetKey     = "gymtracker-sessions"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

type storedSession struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	CreatedAt int64  `json:"createdAt"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Service struct {
	allowList   *AllowList
	users       UserStore
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	allowList *AllowList,
	users UserStore,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		allowList:      allowList,
		users:          users,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login validates the credentials, makes sure a user record exists and
// opens a new session. Nothing is written when the credentials are wrong.
func (as *Service) Login(ctx context.Context, creds Credentials, createdAt time.Time) (_ *LoginResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	username := NormalizeUsername(creds.Username)
	span.SetAttributes(attribute.String("username", username))

	if !as.allowList.Verify(username, creds.Password) {
		return nil, ErrInvalidCredentials
	}

	user, err := as.users.GetUser(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		user, err = as.users.CreateUser(ctx, NewUser(username, createdAt))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAccountCreationFailed, err)
		}
		log.Infof("auth service, created user [%s] with id [%s]", user.Username, user.ID)
	} else if err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}

	token, err := as.RandStringFunc(35)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(storedSession{
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: createdAt.Unix(),
	})
	if err != nil {
		return nil, err
	}

	sessionKey := sessionKeyPrefix + token
	if err := as.redisClient.Set(ctx, sessionKey, payload, 0).Err(); err != nil {
		return nil, err
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User:  *user,
	}, nil
}

func (as *Service) getSession(ctx context.Context, token string) (*storedSession, error) {
	val, err := as.redisClient.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var s storedSession
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("malformed session: %w", err)
	}
	return &s, nil
}

// SessionFor resolves a token into the session it belongs to.
func (as *Service) SessionFor(ctx context.Context, token string) (*Session, error) {
	s, err := as.getSession(ctx, token)
	if err != nil {
		return nil, err
	}

	createdAt := time.Unix(s.CreatedAt, 0)
	if time.Since(createdAt) > as.ttl {
		return nil, ErrSessionExpired
	}

	return &Session{
		Token:     token,
		UserID:    s.UserID,
		Username:  s.Username,
		CreatedAt: createdAt,
	}, nil
}

// Logout removes the session unconditionally; unknown tokens are not an error.
func (as *Service) Logout(ctx context.Context, token string) error {
	if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return err
	}

	// remove token from the list of sessions
	return as.redisClient.SRem(ctx, tokensSetKey, token).Err()
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		s, err := as.getSession(ctx, token)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				// dangling token in the set
				toRemove = append(toRemove, token)
				continue
			}
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}

		if time.Since(time.Unix(s.CreatedAt, 0)) > as.ttl {
			log.Debugf("auth service, will clean the session of user: %s", s.Username)
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.Logout(ctx, token); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
		}
	}
}
