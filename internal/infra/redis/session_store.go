package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

const (
	fieldToken    = "token"
	fieldUserName = "user_name"
	fieldUserType = "user_type"
)

// SessionStore keeps the credential trio in a Redis hash, for shared
// deployments (classroom kiosks) where several terminals reuse one session.
// An optional TTL expires abandoned sessions.
type SessionStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, namespace string, ttl time.Duration) *SessionStore {
	if namespace == "" {
		namespace = "lsm:session"
	}
	return &SessionStore{client: client, key: namespace, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	err := s.client.HSet(ctx, s.key,
		fieldToken, session.Token,
		fieldUserName, session.UserName,
		fieldUserType, session.UserType,
	).Err()
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if s.ttl > 0 {
		_ = s.client.Expire(ctx, s.key, s.ttl).Err()
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) Read(ctx context.Context) (domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}
	return domain.Session{
		Token:    fields[fieldToken],
		UserName: fields[fieldUserName],
		UserType: fields[fieldUserType],
	}, nil
}
