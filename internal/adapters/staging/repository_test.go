package staging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

func (c *stubClock) Sleep(ctx context.Context, d time.Duration) error {
	c.now = c.now.Add(d)
	return ctx.Err()
}

func newTestRepository() *Repository {
	return NewRepository(&stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
}

func sampleResult(url string) domain.ExtractionResult {
	return domain.ExtractionResult{
		Success:  true,
		Metadata: domain.ExtractionMetadata{URL: url},
	}
}

func TestPutAndGet(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	staged, err := repo.Put(ctx, sampleResult("https://example.in/a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if staged.ID == "" {
		t.Fatalf("expected a generated id")
	}

	got, err := repo.Get(ctx, staged.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Result.Metadata.URL != "https://example.in/a" {
		t.Errorf("unexpected staged result: %+v", got.Result.Metadata)
	}
}

func TestGetUnknownID(t *testing.T) {
	repo := newTestRepository()
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrStagedSetNotFound) {
		t.Fatalf("expected ErrStagedSetNotFound, got %v", err)
	}
}

func TestMarkApprovedIsAtMostOnce(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()
	staged, _ := repo.Put(ctx, sampleResult("https://example.in/a"))

	approved, err := repo.MarkApproved(ctx, staged.ID)
	if err != nil {
		t.Fatalf("first approval failed: %v", err)
	}
	if !approved.Approved || approved.ApprovedAt == nil {
		t.Errorf("expected the approval mark to be set, got %+v", approved)
	}

	if _, err := repo.MarkApproved(ctx, staged.ID); !errors.Is(err, domain.ErrAlreadyApproved) {
		t.Fatalf("expected ErrAlreadyApproved, got %v", err)
	}
}

func TestMarkApprovedConcurrent(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()
	staged, _ := repo.Put(ctx, sampleResult("https://example.in/a"))

	const goroutines = 16
	var wg sync.WaitGroup
	successes := make(chan struct{}, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.MarkApproved(ctx, staged.ID); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	count := 0
	for range successes {
		count++
	}
	if count != 1 {
		t.Fatalf("expected exactly one successful approval, got %d", count)
	}
}

func TestListNewestFirst(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewRepository(clock)
	ctx := context.Background()

	first, _ := repo.Put(ctx, sampleResult("https://example.in/old"))
	clock.now = clock.now.Add(time.Minute)
	second, _ := repo.Put(ctx, sampleResult("https://example.in/new"))

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 staged sets, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("expected newest first, got %s then %s", list[0].ID, list[1].ID)
	}
}
