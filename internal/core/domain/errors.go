package domain

import (
	"errors"
	"fmt"
)

// Ошибки-значения, которые могут быть возвращены из use cases.
var (
	ErrMissingCredentials = errors.New("scraping capability credentials are not configured")
	ErrNoContent          = errors.New("scraping capability returned no content")
	ErrStagedSetNotFound  = errors.New("staged result set not found")
	ErrAlreadyApproved    = errors.New("staged result set already approved")
	ErrPresetNotFound     = errors.New("search preset not found")
)

// ValidationError — некорректные параметры поиска; фатальна для запроса
// и поднимается ДО любого обращения к внешнему сервису.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid search parameters: %s: %s", e.Field, e.Message)
}

// ExternalServiceError — вызов scrape/crawl/AI завершился ошибкой.
// Не ретраится автоматически: повтор — это повторно оплаченный вызов.
type ExternalServiceError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("external service: %s failed with status %d: %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("external service: %s failed: %v", e.Operation, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// PollingTimeoutError — crawl-задача не завершилась за отведенный
// бюджет попыток. Количество попыток сохраняем для диагностики.
type PollingTimeoutError struct {
	JobID    string
	Attempts int
}

func (e *PollingTimeoutError) Error() string {
	return fmt.Sprintf("crawl job %s did not complete after %d status checks", e.JobID, e.Attempts)
}

// AIExtractionError — сбой AI-доизвлечения. Пайплайн не падает целиком,
// а возвращается к уже полученным структурированным записям.
type AIExtractionError struct {
	Err error
}

func (e *AIExtractionError) Error() string {
	return fmt.Sprintf("ai extraction failed: %v", e.Err)
}

func (e *AIExtractionError) Unwrap() error { return e.Err }
