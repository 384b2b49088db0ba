package cache

// Cache keeps serialized responses per user. Invalidate drops everything
// cached for one user.
type Cache interface {
	Get(userID, key string) ([]byte, bool)
	Set(userID, key string, value []byte) error
	Invalidate(userID string)
}
