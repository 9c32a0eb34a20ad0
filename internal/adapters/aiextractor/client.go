package aiextractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// Client — HTTP-клиент вторичного AI-сервиса извлечения.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" || apiKey == "" {
		return nil, domain.ErrMissingCredentials
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	traceID := contextkeys.TraceIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// Extract отправляет сырой контент страницы AI-сервису и разбирает
// размеченный ответ: записи либо UI-спецификация.
func (c *Client) Extract(ctx context.Context, payload domain.RawScrapePayload, sourceURL string, hints *domain.SearchParameters) (domain.AIOutcome, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "AIExtractorClient",
		"method":    "Extract",
	})

	reqBody, err := json.Marshal(extractRequest{
		Content: extractContent{
			Markdown: payload.Markdown,
			HTML:     payload.HTML,
		},
		SourceURL: sourceURL,
		Hints:     hints,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode extract request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/extract", c.baseURL)
	clientLogger.Debug("Sending request to AI service", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		clientLogger.Error("Failed to perform request to AI service", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("AI service returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received error response from AI service", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var decoded extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		clientLogger.Error("Failed to decode response from AI service", err, nil)
		return nil, err
	}
	if !decoded.Success {
		return nil, errors.New(decoded.Error)
	}

	// Маппим DTO ответа в доменную модель, изолируя ядро от деталей API.
	switch decoded.Type {
	case outcomeTypeProperties:
		var dtos []aiPropertyDTO
		if err := json.Unmarshal(decoded.Data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to decode AI property records: %w", err)
		}
		records := make([]domain.CanonicalPropertyRecord, len(dtos))
		for i, dto := range dtos {
			record := dto.CanonicalPropertyRecord
			record.Provenance.ExtractedBy = domain.ExtractedByAI
			record.Provenance.Confidence = dto.Confidence
			record.Provenance.FieldsExtracted = dto.FieldsExtracted
			record.Provenance.FieldsMissing = dto.FieldsMissing
			record.Provenance.Warnings = dto.Warnings
			if record.SourceURL == "" {
				record.SourceURL = sourceURL
			}
			records[i] = record
		}
		clientLogger.Info("AI service returned property records", port.Fields{
			"records": len(records),
			"model":   decoded.Meta.Model,
		})
		return domain.ExtractedProperties{Records: records, Meta: decoded.Meta.toDomain()}, nil

	case outcomeTypeUISpec:
		var spec map[string]interface{}
		if err := json.Unmarshal(decoded.Data, &spec); err != nil {
			return nil, fmt.Errorf("failed to decode AI UI specification: %w", err)
		}
		clientLogger.Info("AI service returned a UI specification", port.Fields{"model": decoded.Meta.Model})
		return domain.UISpecification{Spec: spec, Meta: decoded.Meta.toDomain()}, nil

	default:
		return nil, fmt.Errorf("AI service returned unknown outcome type %q", decoded.Type)
	}
}
