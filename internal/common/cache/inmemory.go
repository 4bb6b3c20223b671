package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const cleanInterval = time.Minute

// InMemoryClient is a process-local TTL cache over sync.Map. Values are stored
// json-encoded so T behaves the same here as it would against a remote cache.
type InMemoryClient[T any] struct {
	entries sync.Map
	done    chan struct{}
}

type entry struct {
	payload string
	expAt   time.Time
}

func (e *entry) expired() bool {
	return !e.expAt.IsZero() && e.expAt.Before(time.Now())
}

func NewInMemoryClient[T any]() *InMemoryClient[T] {
	m := &InMemoryClient[T]{
		done: make(chan struct{}),
	}

	go m.sweep()
	return m
}

func (m *InMemoryClient[T]) Get(ctx context.Context, key string) (result T, err error) {
	raw, found := m.entries.Load(key)
	if !found {
		return result, ErrNotExists
	}

	e, ok := raw.(*entry)
	if !ok {
		return result, ErrInvalidType
	}
	if e.expired() {
		m.entries.Delete(key)
		return result, ErrNotExists
	}

	if err = json.Unmarshal([]byte(e.payload), &result); err != nil {
		return result, err
	}

	return result, nil
}

func (m *InMemoryClient[T]) Set(ctx context.Context, key string, object T, ttl time.Duration) error {
	payload, err := json.Marshal(object)
	if err != nil {
		return err
	}

	m.entries.Store(key, &entry{
		payload: string(payload),
		expAt:   time.Now().Add(ttl),
	})
	return nil
}

func (m *InMemoryClient[T]) Delete(ctx context.Context, key string) error {
	m.entries.Delete(key)
	return nil
}

func (m *InMemoryClient[T]) GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (result T, err error) {
	if opts.Callback == nil {
		return result, ErrCallbackNotProvided
	}

	cached, err := m.Get(ctx, opts.Key)
	if err == nil {
		return cached, nil
	}
	if err != ErrNotExists {
		return result, err
	}

	fresh, err := opts.Callback()
	if err != nil {
		return result, err
	}

	if err = m.Set(ctx, opts.Key, fresh, opts.TTL); err != nil {
		return result, err
	}

	return fresh, nil
}

// sweep drops expired entries until Close is called.
func (m *InMemoryClient[T]) sweep() {
	ticker := time.NewTicker(cleanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.entries.Range(func(key, value interface{}) bool {
				e, ok := value.(*entry)
				if !ok || e.expired() {
					m.entries.Delete(key)
				}
				return true
			})
		case <-m.done:
			return
		}
	}
}

// Close stops the background sweeper.
func (m *InMemoryClient[T]) Close() {
	close(m.done)
}
