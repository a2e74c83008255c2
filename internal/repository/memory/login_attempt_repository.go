package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// LoginAttemptRepository tracks failed login attempts per email in-process.
// Counters expire on their own, so a lockout clears itself after the window.
type LoginAttemptRepository struct {
	cache *cache.Cache
}

func NewLoginAttemptRepository(window time.Duration) *LoginAttemptRepository {
	c := cache.New(window, 10*time.Minute)
	return &LoginAttemptRepository{
		cache: c,
	}
}

// RecordFailure increments the failure counter for an email and returns the
// new count.
func (r *LoginAttemptRepository) RecordFailure(email string) int {
	if n, err := r.cache.IncrementInt(email, 1); err == nil {
		return n
	}
	r.cache.Set(email, 1, cache.DefaultExpiration)
	return 1
}

// Failures returns the current failure count for an email.
func (r *LoginAttemptRepository) Failures(email string) int {
	if x, found := r.cache.Get(email); found {
		return x.(int)
	}
	return 0
}

// Reset clears the counter after a successful login.
func (r *LoginAttemptRepository) Reset(email string) {
	r.cache.Delete(email)
}
