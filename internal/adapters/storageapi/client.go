package storageapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// Client — HTTP-клиент каталога недвижимости. Одобренные записи уезжают
// туда bulk-запросом; долговременное хранение — целиком его забота.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("storage API base URL is required")
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
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
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// BulkImport отправляет пачку одобренных записей в каталог.
// Каждая запись получает отпечаток для дедупликации перед отправкой.
func (c *Client) BulkImport(ctx context.Context, req domain.BulkImportRequest) (*domain.BulkImportResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "StorageApiClient",
		"method":    "BulkImport",
	})

	properties := make([]bulkPropertyDTO, len(req.Records))
	for i, record := range req.Records {
		properties[i] = bulkPropertyDTO{
			CanonicalPropertyRecord: record,
			Fingerprint:             recordFingerprint(record),
		}
	}

	reqBody, err := json.Marshal(bulkImportRequestDTO{
		Properties:        properties,
		SkipValidation:    req.SkipValidation,
		OverwriteExisting: req.OverwriteExisting,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode bulk import request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/properties/bulk-import", c.baseURL)
	clientLogger.Debug("Sending request to the catalog", port.Fields{
		"url":     url,
		"records": len(properties),
	})

	resp, err := c.doRequest(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		clientLogger.Error("Failed to perform request to the catalog", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("catalog returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received error response from the catalog", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var decoded bulkImportResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		clientLogger.Error("Failed to decode response from the catalog", err, nil)
		return nil, err
	}

	// Маппим DTO ответа в доменную модель, изолируя ядро от деталей API.
	result := &domain.BulkImportResult{
		Imported:   decoded.Imported,
		Failed:     decoded.Failed,
		CreatedIDs: decoded.CreatedIDs,
	}
	for _, e := range decoded.Errors {
		result.Errors = append(result.Errors, domain.BulkImportError{Index: e.Index, Error: e.Message})
	}

	clientLogger.Info("Bulk import finished", port.Fields{
		"imported": result.Imported,
		"failed":   result.Failed,
	})
	return result, nil
}
