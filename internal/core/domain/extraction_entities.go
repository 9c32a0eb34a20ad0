package domain

import "time"

// AIExtractionMeta — служебные данные ответа AI-сервиса.
type AIExtractionMeta struct {
	Model            string   `json:"model"`
	TokensUsed       int      `json:"tokensUsed"`
	ProcessingTimeMs int64    `json:"processingTimeMs"`
	Warnings         []string `json:"warnings,omitempty"`
}

// AIOutcome — размеченное объединение: AI-сервис возвращает ЛИБО записи,
// ЛИБО декларативную UI-спецификацию, но никогда смесь. Каждый потребитель
// обязан исчерпывающе разобрать оба варианта через type switch.
type AIOutcome interface {
	aiOutcome()
}

// ExtractedProperties — вариант с записями-кандидатами.
type ExtractedProperties struct {
	Records []CanonicalPropertyRecord
	Meta    AIExtractionMeta
}

func (ExtractedProperties) aiOutcome() {}

// UISpecification — вариант с декларативным описанием презентации.
// Содержимое спецификации для пайплайна непрозрачно: мы её не рендерим,
// а передаем ревьюеру как есть.
type UISpecification struct {
	Spec map[string]interface{}
	Meta AIExtractionMeta
}

func (UISpecification) aiOutcome() {}

// ExtractionMetadata — метаданные одного прогона пайплайна.
type ExtractionMetadata struct {
	URL          string            `json:"url"`
	ScrapedAt    time.Time         `json:"scrapedAt"`
	TotalFound   int               `json:"totalFound"`
	SearchParams *SearchParameters `json:"searchParams,omitempty"`
	JobID        string            `json:"jobId,omitempty"`
	CreditsUsed  float64           `json:"creditsUsed"`
	AIMeta       *AIExtractionMeta `json:"aiMeta,omitempty"`
}

// ExtractionResult — выход пайплайна в сторону review-слоя.
// Либо Records непустой и UISpec == nil, либо наоборот; пустой прогон
// допустим (Success=true, ноль записей).
type ExtractionResult struct {
	Success     bool                      `json:"success"`
	Records     []CanonicalPropertyRecord `json:"data"`
	RawPayloads []RawScrapePayload        `json:"rawPayload"`
	UISpec      map[string]interface{}    `json:"uiSpec,omitempty"`
	Metadata    ExtractionMetadata        `json:"metadata"`
}

// StagedResultSet — результат прогона, ожидающий решения ревьюера.
// Хранится только в памяти процесса; одобрение строго однократное.
type StagedResultSet struct {
	ID         string           `json:"id"`
	Result     ExtractionResult `json:"result"`
	CreatedAt  time.Time        `json:"createdAt"`
	Approved   bool             `json:"approved"`
	ApprovedAt *time.Time       `json:"approvedAt,omitempty"`
}

// ExtractionReport — компактная статистика прогона для события-отчета.
type ExtractionReport struct {
	RunID             string  `json:"run_id"`
	SourceURL         string  `json:"source_url"`
	RecordsExtracted  int     `json:"records_extracted"`
	RecordsWithIssues int     `json:"records_with_issues"`
	AIRecords         int     `json:"ai_records"`
	CreditsUsed       float64 `json:"credits_used"`
	DurationMs        int64   `json:"duration_ms"`
}

// ImportReport — статистика подтвержденного импорта в каталог.
type ImportReport struct {
	StagingID string `json:"staging_id"`
	SourceURL string `json:"source_url"`
	Imported  int    `json:"imported"`
	Failed    int    `json:"failed"`
}
