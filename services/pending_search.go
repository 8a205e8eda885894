package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bukarum/utils"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultSearchTTL     = 30 * time.Minute
	pendingSearchPrefix  = "pending_search:"
	pendingSearchSubject = "pending_search"
)

// PendingSearch is the date range a user searched for, carried from the
// search step to the booking step.
type PendingSearch struct {
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (p PendingSearch) Nights() int {
	return utils.Nights(p.CheckIn, p.CheckOut)
}

// NewPendingSearch validates the textual dates of a search form.
func NewPendingSearch(checkIn, checkOut string) (PendingSearch, error) {
	in, err := utils.ParseDate(strings.TrimSpace(checkIn))
	if err != nil {
		return PendingSearch{}, ErrDateFormat
	}
	out, err := utils.ParseDate(strings.TrimSpace(checkOut))
	if err != nil {
		return PendingSearch{}, ErrDateFormat
	}
	if utils.Nights(in, out) <= 0 {
		return PendingSearch{}, ErrInvalidDateRange
	}
	return PendingSearch{CheckIn: in, CheckOut: out}, nil
}

// PendingSearchStore hands out an opaque token for a search and resolves it
// later. Load reports ErrSearchExpired for anything it cannot honour.
type PendingSearchStore interface {
	Save(ctx context.Context, search PendingSearch) (string, error)
	Load(ctx context.Context, token string) (PendingSearch, error)
	Clear(ctx context.Context, token string) error
}

// ---------------- Signed token ----------------

type searchClaims struct {
	CheckIn  string `json:"ci"`
	CheckOut string `json:"co"`
	jwt.RegisteredClaims
}

// TokenSearchStore keeps nothing server side: the search travels inside an
// HS256 token that expires after TTL.
type TokenSearchStore struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokenSearchStore(secret string, ttl time.Duration) *TokenSearchStore {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	return &TokenSearchStore{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

func (s *TokenSearchStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenSearchStore) Save(_ context.Context, search PendingSearch) (string, error) {
	now := s.now()
	claims := searchClaims{
		CheckIn:  utils.FormatDate(search.CheckIn),
		CheckOut: utils.FormatDate(search.CheckOut),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   pendingSearchSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *TokenSearchStore) Load(_ context.Context, raw string) (PendingSearch, error) {
	if strings.TrimSpace(raw) == "" {
		return PendingSearch{}, ErrSearchExpired
	}
	var claims searchClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(pendingSearchSubject),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return PendingSearch{}, ErrSearchExpired
	}

	in, inErr := time.Parse(utils.ISODate, claims.CheckIn)
	out, outErr := time.Parse(utils.ISODate, claims.CheckOut)
	if inErr != nil || outErr != nil || claims.ExpiresAt == nil {
		return PendingSearch{}, ErrSearchExpired
	}
	return PendingSearch{CheckIn: in, CheckOut: out, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Clear is a no-op; the token simply expires.
func (s *TokenSearchStore) Clear(context.Context, string) error { return nil }

// ---------------- Redis ----------------

// RedisSearchStore keeps each search under pending_search:<uuid> with a TTL.
type RedisSearchStore struct {
	RDB *redis.Client
	TTL time.Duration
	Now func() time.Time
}

func NewRedisSearchStore(rdb *redis.Client, ttl time.Duration) *RedisSearchStore {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	return &RedisSearchStore{RDB: rdb, TTL: ttl, Now: time.Now}
}

func (s *RedisSearchStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *RedisSearchStore) Save(ctx context.Context, search PendingSearch) (string, error) {
	search.ExpiresAt = s.now().Add(s.TTL).UTC()
	b, err := json.Marshal(search)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.RDB.Set(ctx, pendingSearchPrefix+id, b, s.TTL).Err(); err != nil {
		return "", fmt.Errorf("save pending search: %w", err)
	}
	return id, nil
}

func (s *RedisSearchStore) Load(ctx context.Context, token string) (PendingSearch, error) {
	if _, err := uuid.Parse(token); err != nil {
		return PendingSearch{}, ErrSearchExpired
	}
	val, err := s.RDB.Get(ctx, pendingSearchPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return PendingSearch{}, ErrSearchExpired
	}
	if err != nil {
		return PendingSearch{}, fmt.Errorf("load pending search: %w", err)
	}
	var search PendingSearch
	if err := json.Unmarshal([]byte(val), &search); err != nil {
		return PendingSearch{}, ErrSearchExpired
	}
	if !search.ExpiresAt.IsZero() && s.now().After(search.ExpiresAt) {
		return PendingSearch{}, ErrSearchExpired
	}
	return search, nil
}

func (s *RedisSearchStore) Clear(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return nil
	}
	return s.RDB.Del(ctx, pendingSearchPrefix+token).Err()
}
