package staging

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// Repository — in-memory отстойник результатов извлечения.
// Результаты живут до решения ревьюера и пропадают при рестарте процесса,
// долговременное хранение — забота каталога после одобрения.
type Repository struct {
	mu    sync.Mutex
	sets  map[string]*domain.StagedResultSet
	clock port.ClockPort
}

func NewRepository(clock port.ClockPort) *Repository {
	return &Repository{
		sets:  make(map[string]*domain.StagedResultSet),
		clock: clock,
	}
}

func (r *Repository) Put(_ context.Context, result domain.ExtractionResult) (*domain.StagedResultSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := &domain.StagedResultSet{
		ID:        uuid.New().String(),
		Result:    result,
		CreatedAt: r.clock.Now(),
	}
	r.sets[staged.ID] = staged

	copied := *staged
	return &copied, nil
}

func (r *Repository) Get(_ context.Context, id string) (*domain.StagedResultSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged, ok := r.sets[id]
	if !ok {
		return nil, domain.ErrStagedSetNotFound
	}
	copied := *staged
	return &copied, nil
}

func (r *Repository) List(_ context.Context) ([]domain.StagedResultSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.StagedResultSet, 0, len(r.sets))
	for _, staged := range r.sets {
		out = append(out, *staged)
	}
	// Стабильный порядок для review-интерфейса: новые сверху.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// MarkApproved атомарно помечает набор одобренным: проверка и установка
// флага происходят под одним мьютексом, поэтому из двух конкурентных
// одобрений пройдет ровно одно.
func (r *Repository) MarkApproved(_ context.Context, id string) (*domain.StagedResultSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged, ok := r.sets[id]
	if !ok {
		return nil, domain.ErrStagedSetNotFound
	}
	if staged.Approved {
		return nil, domain.ErrAlreadyApproved
	}

	now := r.clock.Now()
	staged.Approved = true
	staged.ApprovedAt = &now

	copied := *staged
	return &copied, nil
}
