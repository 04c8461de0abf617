package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// VerificationCodeTTL is how long an emailed code stays valid.
const VerificationCodeTTL = 30 * time.Minute

// CodeStore keeps one pending verification code per email in Redis.
type CodeStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCodeStore returns a CodeStore keeping codes in rdb for ttl.
func NewCodeStore(rdb *redis.Client, ttl time.Duration) *CodeStore {
	if ttl <= 0 {
		ttl = VerificationCodeTTL
	}
	return &CodeStore{rdb: rdb, ttl: ttl}
}

func codeKey(email string) string { return "verify:" + strings.TrimSpace(email) }

// Save stores code for email, replacing any earlier one.
func (s *CodeStore) Save(ctx context.Context, email, code string) error {
	return s.rdb.SetEx(ctx, codeKey(email), code, s.ttl).Err()
}

// Consume reports whether code matches the pending one and, if so, removes
// it. A code can be consumed once.
func (s *CodeStore) Consume(ctx context.Context, email, code string) (bool, error) {
	key := codeKey(email)
	stored, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	n, err := s.rdb.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// newVerificationCode returns a uniformly random 6-digit code.
func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
