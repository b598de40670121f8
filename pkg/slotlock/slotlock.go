package slotlock

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось получить до отмены контекста
	ErrLockTimeout = errors.New("slotlock: lock wait timed out")

	// ErrLockBackend возвращается при ошибке хранилища блокировок
	ErrLockBackend = errors.New("slotlock: backend error")
)

// Unlock освобождает полученную блокировку
type Unlock func()

// Key формирует ключ блокировки слота услуги
func Key(serviceID int64, date time.Time, startTime string) string {
	return fmt.Sprintf("slot:%d:%s:%s", serviceID, date.Format("2006-01-02"), startTime)
}

// Locker блокировка слота на время проверки и записи
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

type timed struct {
	locker  Locker
	timeout time.Duration
}

// WithWaitTimeout ограничивает ожидание блокировки, не затрагивая контекст удержания
func WithWaitTimeout(locker Locker, timeout time.Duration) Locker {
	if timeout <= 0 {
		return locker
	}
	return &timed{locker: locker, timeout: timeout}
}

func (t *timed) Lock(ctx context.Context, key string) (Unlock, error) {
	waitCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.locker.Lock(waitCtx, key)
}
