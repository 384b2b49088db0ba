package auth

import (
	"errors"
	"fmt"
	"sort"

	"github.com/2beens/gymtracker/pkg"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountCreationFailed = errors.New("account creation failed")
)

// DefaultAllowList holds the fixed training group. Every account not listed
// with its own password uses the username as password.
var DefaultAllowList = map[string]string{
	"priya":  "elephant",
	"jeet":   "jeet@123",
	"anuj":   "anuj",
	"ankur":  "ankur",
	"shreya": "shreya",
	"hait":   "hait",
	"veer":   "veer",
	"druav":  "druav",
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AllowList checks credentials against bcrypt hashes, never plaintext.
type AllowList struct {
	hashes map[string]string
}

// NewAllowList hashes the given plaintext table once, at startup.
func NewAllowList(passwords map[string]string, cost int) (*AllowList, error) {
	hashes := make(map[string]string, len(passwords))
	for username, password := range passwords {
		hash, err := pkg.HashPasswordWithCost(password, cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", username, err)
		}
		hashes[NormalizeUsername(username)] = hash
	}
	return &AllowList{hashes: hashes}, nil
}

func NewAllowListFromHashes(hashes map[string]string) *AllowList {
	normalized := make(map[string]string, len(hashes))
	for username, hash := range hashes {
		normalized[NormalizeUsername(username)] = hash
	}
	return &AllowList{hashes: normalized}
}

func (a *AllowList) Verify(username, password string) bool {
	hash, ok := a.hashes[NormalizeUsername(username)]
	if !ok {
		return false
	}
	return pkg.CheckPasswordHash(password, hash)
}

func (a *AllowList) Usernames() []string {
	names := make([]string, 0, len(a.hashes))
	for name := range a.hashes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
