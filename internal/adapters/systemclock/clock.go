package systemclock

import (
	"context"
	"time"
)

// Clock — системная реализация часов для production-сборки.
type Clock struct{}

func New() *Clock { return &Clock{} }

func (Clock) Now() time.Time { return time.Now().UTC() }

// Sleep блокируется на d или до отмены контекста.
func (Clock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
