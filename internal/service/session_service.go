package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SessionStore tracks which login sessions are still live. A signed token
// whose session is missing here has been logged out.
type SessionStore interface {
	Save(ctx context.Context, userID uuid.UUID, sessionID string, ttl time.Duration) error
	Exists(ctx context.Context, userID uuid.UUID, sessionID string) (bool, error)
	Delete(ctx context.Context, userID uuid.UUID, sessionID string) error
}

const redisSessionKeyPrefix = "session:"

type redisSessionStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisSessionStore(client *redis.Client, log *logrus.Logger) SessionStore {
	return &redisSessionStore{client: client, log: log}
}

func sessionKey(userID uuid.UUID, sessionID string) string {
	return fmt.Sprintf("%s%s:%s", redisSessionKeyPrefix, userID.String(), sessionID)
}

func (s *redisSessionStore) Save(ctx context.Context, userID uuid.UUID, sessionID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(userID, sessionID), "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store session in Redis: %+v", err)
		return err
	}
	return nil
}

func (s *redisSessionStore) Exists(ctx context.Context, userID uuid.UUID, sessionID string) (bool, error) {
	exists, err := s.client.Exists(ctx, sessionKey(userID, sessionID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check session in Redis: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, userID uuid.UUID, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(userID, sessionID)).Err(); err != nil {
		s.log.Warnf("Failed to delete session from Redis: %+v", err)
		return err
	}
	return nil
}
