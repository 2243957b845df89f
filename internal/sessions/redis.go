package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyFmt = "atlas:session:%s"

	// optimistic transaction attempts before giving up
	maxUpdateAttempts = 5
)

// keeps sessions in Redis as JSON with a sliding TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// connects to the Redis server at url and checks it is reachable
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ttl), nil
}

func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// returns the session and resets its expiry, so reads keep it alive
// for as long as the cookie that points to it
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	session, err := decode(r.client.GetEx(ctx, sessionKey(id), r.ttl).Bytes())
	if err != nil {
		return nil, err
	}

	session.LastActivity = time.Now()

	return session, nil
}

func (r *RedisStore) Update(ctx context.Context, id string, fn func(*Session)) (*Session, error) {
	key := sessionKey(id)

	var updated *Session

	txf := func(tx *redis.Tx) error {
		session, err := load(ctx, tx, id)
		if errors.Is(err, ErrSessionNotFound) {
			session = newSession(id)
		} else if err != nil {
			return err
		}

		fn(session)
		session.ID = id
		session.LastActivity = time.Now()

		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = session
		return nil
	}

	for range maxUpdateAttempts {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update session: %w", err)
		}
		return updated, nil
	}

	return nil, fmt.Errorf("failed to update session: too much contention on %s", key)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func sessionKey(id string) string {
	return fmt.Sprintf(sessionKeyFmt, id)
}

// implemented by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func load(ctx context.Context, cmd getter, id string) (*Session, error) {
	return decode(cmd.Get(ctx, sessionKey(id)).Bytes())
}

func decode(data []byte, err error) (*Session, error) {
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &session, nil
}

// returns the underlying client so other components can share the connection
func (r *RedisStore) Client() *redis.Client {
	return r.client
}
