// Package redis implementa numeración de facturas y locks de emisión sobre Redis,
// para cuando corren varias réplicas de la API.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"equine-clinic/internal/domain/apperr"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
)

const (
	lockTTL   = 30 * time.Second
	lockRetry = 100 * time.Millisecond
	// lockWait acota cuánto espera Lock antes de rendirse.
	lockWait = 10 * time.Second
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// Open conecta y hace ping. El llamador cierra el cliente.
func Open(ctx context.Context, cfg Config) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// Sequencer usa INCR sobre invoice_seq:<clinica>:<año>.
type Sequencer struct {
	rdb *goredis.Client
}

func NewSequencer(rdb *goredis.Client) *Sequencer {
	return &Sequencer{rdb: rdb}
}

func (s *Sequencer) Next(ctx context.Context, clinicID string, year int) (int64, error) {
	n, err := s.rdb.Incr(ctx, fmt.Sprintf("invoice_seq:%s:%d", clinicID, year)).Result()
	if err != nil {
		return 0, apperr.Collaborator("redis.incr", err)
	}
	return n, nil
}

// Locker toma "lock:<key>" con redislock, reintentando hasta lockWait.
type Locker struct {
	client *redislock.Client
}

func NewLocker(rdb *goredis.Client) *Locker {
	return &Locker{client: redislock.New(rdb)}
}

func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, lockWait)
	defer cancel()

	lock, err := l.client.Obtain(waitCtx, "lock:"+key, lockTTL, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(lockRetry),
	})
	switch {
	case errors.Is(err, redislock.ErrNotObtained), errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		return nil, fmt.Errorf("lock %s busy: %w", key, apperr.ErrConflict)
	case err != nil:
		return nil, apperr.Collaborator("redis.lock", err)
	}

	return func() {
		// context propio: el del request puede estar cancelado
		releaseCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = lock.Release(releaseCtx)
	}, nil
}
