package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"backoffice-service/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Session is one server-side login of the browser-rendered surface.
type Session struct {
	ID       string
	UserID   int64
	Username string
	Role     string
}

// SessionRegistry stores login state for the session flow. One session
// per user: a new login evicts the previous one.
type SessionRegistry interface {
	Create(ctx context.Context, userID int64, username, role string) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Destroy(ctx context.Context, sessionID string) error
}

// RedisSessionRegistry keeps sessions in Redis under session:<id> with a
// session:user:<id> pointer used for eviction.
type RedisSessionRegistry struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionRegistry(addr, password string, db int, ttl time.Duration) (*RedisSessionRegistry, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisSessionRegistry{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection
func (r *RedisSessionRegistry) Close() error {
	return r.rdb.Close()
}

func sessionKey(id string) string     { return "session:" + id }
func userSessionKey(uid int64) string { return fmt.Sprintf("session:user:%d", uid) }

// Create registers a new session and invalidates the user's previous
// one, if any.
func (r *RedisSessionRegistry) Create(ctx context.Context, userID int64, username, role string) (*Session, error) {
	previous, err := r.rdb.Get(ctx, userSessionKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to look up previous session: %w", err)
	}
	if previous != "" {
		if err := r.rdb.Del(ctx, sessionKey(previous)).Err(); err != nil {
			return nil, fmt.Errorf("failed to evict previous session: %w", err)
		}
		util.SessionsEvictedTotal.Inc()
	}

	session := &Session{
		ID:       uuid.New().String(),
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, sessionKey(session.ID),
		"user_id", session.UserID,
		"username", session.Username,
		"role", session.Role)
	pipe.Expire(ctx, sessionKey(session.ID), r.ttl)
	pipe.Set(ctx, userSessionKey(userID), session.ID, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

// Get resolves a session id; a missing or expired session returns nil.
func (r *RedisSessionRegistry) Get(ctx context.Context, sessionID string) (*Session, error) {
	fields, err := r.rdb.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", sessionID, err)
	}
	return &Session{
		ID:       sessionID,
		UserID:   userID,
		Username: fields["username"],
		Role:     fields["role"],
	}, nil
}

// Destroy removes the session and its user pointer.
func (r *RedisSessionRegistry) Destroy(ctx context.Context, sessionID string) error {
	session, err := r.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	pipe := r.rdb.Pipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.Del(ctx, userSessionKey(session.UserID))
	_, err = pipe.Exec(ctx)
	return err
}
