package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NoticeStore queues one-shot user-visible messages per session. They are
// shown on the next page that reads them and then discarded.
type NoticeStore interface {
	Push(ctx context.Context, sessionID string, notice string) error
	Pop(ctx context.Context, sessionID string) ([]string, error)
}

const redisNoticeKeyPrefix = "notice:"

type redisNoticeStore struct {
	client *redis.Client
	log    *logrus.Logger
	ttl    time.Duration
}

func NewRedisNoticeStore(client *redis.Client, log *logrus.Logger, ttl time.Duration) NoticeStore {
	return &redisNoticeStore{client: client, log: log, ttl: ttl}
}

func noticeKey(sessionID string) string {
	return redisNoticeKeyPrefix + sessionID
}

func (s *redisNoticeStore) Push(ctx context.Context, sessionID string, notice string) error {
	key := noticeKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, notice)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to push notice to Redis: %+v", err)
		return err
	}
	return nil
}

// Pop reads and clears pending notices atomically
func (s *redisNoticeStore) Pop(ctx context.Context, sessionID string) ([]string, error) {
	key := noticeKey(sessionID)
	pipe := s.client.TxPipeline()
	read := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		s.log.Warnf("Failed to pop notices from Redis: %+v", err)
		return nil, err
	}
	return read.Val(), nil
}
