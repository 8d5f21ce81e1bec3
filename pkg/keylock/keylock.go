// Package keylock блокировки по ключу: внутрипроцессная (Local) и распределенная на Redis (Redis)
package keylock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrNotAcquired блокировку не удалось захватить до отмены контекста
	ErrNotAcquired = errors.New("keylock: lock not acquired")
)

// Unlock освобождает захваченную блокировку. Повторный вызов ничего не делает
type Unlock func()

// Locker блокировка по ключу
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

type timedLocker struct {
	locker  Locker
	timeout time.Duration
}

// WithAcquireTimeout ограничивает ожидание захвата блокировки.
// Время удержания захваченной блокировки не ограничивается
func WithAcquireTimeout(locker Locker, timeout time.Duration) Locker {
	if timeout <= 0 {
		return locker
	}
	return &timedLocker{locker: locker, timeout: timeout}
}

func (t *timedLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.locker.Lock(acquireCtx, key)
}

type entry struct {
	sem  chan struct{}
	refs int
}

// Local мьютекс по ключу внутри процесса. Записи удаляются, когда ключ никому не нужен
type Local struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewLocal создает внутрипроцессную блокировку
func NewLocal() *Local {
	return &Local{entries: make(map[string]*entry)}
}

// Lock захватывает блокировку key, ожидая не дольше, чем живет ctx
func (l *Local) Lock(ctx context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, fmt.Errorf("%w: key=%s: %v", ErrNotAcquired, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(key, e)
		})
	}, nil
}

// Len количество ключей, по которым есть владельцы или ожидающие
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Local) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
