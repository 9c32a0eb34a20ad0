package aiextractor

import (
	"encoding/json"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

type extractRequest struct {
	Content   extractContent           `json:"content"`
	SourceURL string                   `json:"sourceUrl"`
	Hints     *domain.SearchParameters `json:"hints,omitempty"`
}

type extractContent struct {
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`
}

const (
	outcomeTypeProperties = "properties"
	outcomeTypeUISpec     = "uiSpec"
)

// extractResponse — размеченный ответ AI-сервиса: поле type определяет,
// как разбирать data.
type extractResponse struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Meta    aiMetaDTO       `json:"meta"`
	Error   string          `json:"error,omitempty"`
}

type aiMetaDTO struct {
	Model            string   `json:"model"`
	TokensUsed       int      `json:"tokensUsed"`
	ProcessingTimeMs int64    `json:"processingTimeMs"`
	Warnings         []string `json:"warnings,omitempty"`
}

// aiPropertyDTO — каноническая запись плюс пер-записные аннотации модели.
// Сервис отдает их соседями полей записи, а не внутри extractionProvenance.
type aiPropertyDTO struct {
	domain.CanonicalPropertyRecord
	Confidence      *float64 `json:"confidence,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	FieldsExtracted []string `json:"fieldsExtracted,omitempty"`
	FieldsMissing   []string `json:"fieldsMissing,omitempty"`
}

func (m aiMetaDTO) toDomain() domain.AIExtractionMeta {
	return domain.AIExtractionMeta{
		Model:            m.Model,
		TokensUsed:       m.TokensUsed,
		ProcessingTimeMs: m.ProcessingTimeMs,
		Warnings:         m.Warnings,
	}
}
