package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// Заглушки для обязательных полей. Кандидат с отсутствующими полями
// не отбрасывается — заглушку потом пометит валидатор.
const (
	PlaceholderTitle       = "Placeholder title"
	PlaceholderDescription = "Placeholder description"
	PlaceholderLocation    = "Unknown"
)

// TransformPayloads превращает сырые payload'ы в канонические записи.
// Один сломанный кандидат логируется и исключается, но никогда
// не роняет остальную пачку.
func TransformPayloads(ctx context.Context, payloads []domain.RawScrapePayload, sourceURL string, searchParams *domain.SearchParameters, now time.Time) []domain.CanonicalPropertyRecord {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "Transformer",
	})

	records := make([]domain.CanonicalPropertyRecord, 0)
	for pageIdx, payload := range payloads {
		if !payload.HasStructured() {
			continue
		}

		candidates, err := decodeCandidates(payload.Structured)
		if err != nil {
			logger.Warn("Structured block is not decodable, skipping page", port.Fields{
				"page":  pageIdx,
				"error": err.Error(),
			})
			continue
		}

		for candIdx, candidate := range candidates {
			record, mapErr := safeMapCandidate(candidate, sourceURL, now)
			if mapErr != nil {
				logger.Error("Candidate transformation failed, excluding it", mapErr, port.Fields{
					"page":      pageIdx,
					"candidate": candIdx,
				})
				continue
			}
			records = append(records, *record)
		}
	}

	logger.Debug("Transformation finished", port.Fields{
		"pages":      len(payloads),
		"records":    len(records),
		"has_search": searchParams != nil,
	})
	return records
}

// decodeCandidates принимает одиночный объект как одного кандидата,
// массив — как многих.
func decodeCandidates(structured json.RawMessage) ([]map[string]interface{}, error) {
	var single map[string]interface{}
	if err := json.Unmarshal(structured, &single); err == nil {
		return []map[string]interface{}{single}, nil
	}

	var many []map[string]interface{}
	if err := json.Unmarshal(structured, &many); err != nil {
		return nil, fmt.Errorf("structured block is neither object nor array of objects: %w", err)
	}
	return many, nil
}

// safeMapCandidate изолирует panic при маппинге одного кандидата.
func safeMapCandidate(candidate map[string]interface{}, sourceURL string, now time.Time) (record *domain.CanonicalPropertyRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("panic while mapping candidate: %v", r)
		}
	}()
	record = mapCandidate(candidate, sourceURL, now)
	return record, nil
}

func mapCandidate(candidate map[string]interface{}, sourceURL string, now time.Time) *domain.CanonicalPropertyRecord {
	extracted := make([]string, 0, 8)
	missing := make([]string, 0, 8)
	note := func(field string, ok bool) {
		if ok {
			extracted = append(extracted, field)
		} else {
			missing = append(missing, field)
		}
	}

	record := &domain.CanonicalPropertyRecord{
		SourceURL:        sourceURL,
		ScrapedAt:        now,
		ValidationErrors: []string{},
		RawData:          candidate,
		Media:            domain.Media{Images: []string{}, Videos: []string{}},
		Availability:     domain.Availability{Status: domain.AvailabilityAvailable},
	}

	record.Title = stringOrDefault(candidate, "title", PlaceholderTitle)
	note("title", record.Title != PlaceholderTitle)

	record.Description = stringOrDefault(candidate, "description", PlaceholderDescription)
	note("description", record.Description != PlaceholderDescription)

	record.Location = stringOrDefault(candidate, "location", PlaceholderLocation)
	note("location", record.Location != PlaceholderLocation)

	record.Price = mapPrice(candidate)
	note("price", record.Price != nil)

	record.Size = mapSize(candidate)
	note("size", record.Size != nil)

	if amenities := asStringSlice(candidate["amenities"]); len(amenities) > 0 {
		record.Amenities = amenities
	}
	note("amenities", record.Amenities != nil)

	if features := asMap(candidate["features"]); features != nil {
		record.Features = make(map[string]bool, len(features))
		for name, v := range features {
			flag, _ := v.(bool)
			record.Features[name] = flag
		}
	}
	note("features", record.Features != nil)

	record.Contact = mapContact(candidate)
	note("contact", record.Contact != nil)

	if media := asMap(candidate["media"]); media != nil {
		record.Media.Images = filterAbsoluteURLs(asStringSlice(media["images"]))
		record.Media.Videos = filterAbsoluteURLs(asStringSlice(media["videos"]))
	} else {
		// Часть источников кладет изображения прямо в корень кандидата.
		record.Media.Images = filterAbsoluteURLs(asStringSlice(candidate["images"]))
	}
	note("media", len(record.Media.Images) > 0 || len(record.Media.Videos) > 0)

	if availability := asMap(candidate["availability"]); availability != nil {
		if status := asString(availability["status"]); domain.IsKnownAvailability(status) {
			record.Availability.Status = status
		}
	} else if status := asString(candidate["availability"]); domain.IsKnownAvailability(status) {
		record.Availability.Status = status
	}

	record.Coordinates = mapCoordinates(candidate)

	record.Provenance = domain.ExtractionProvenance{
		ExtractedBy:     domain.ExtractedByScrape,
		FieldsExtracted: extracted,
		FieldsMissing:   missing,
	}
	return record
}

// mapPrice собирает составное поле цены целиком или не собирает вовсе.
// Числовые строки разбираются с нулевым fallback; нераспознанная валюта
// откатывается к INR, период — к monthly.
func mapPrice(candidate map[string]interface{}) *domain.Price {
	priceMap := asMap(candidate["price"])

	var amount float64
	currency := domain.CurrencyINR
	period := domain.PeriodMonthly

	switch {
	case priceMap != nil:
		amount = asFloat(priceMap["amount"])
		if c := strings.ToUpper(asString(priceMap["currency"])); domain.IsKnownCurrency(c) {
			currency = c
		}
		if p := asString(priceMap["period"]); domain.IsKnownPeriod(p) {
			period = p
		}
	case candidate["price"] != nil:
		amount = asFloat(candidate["price"])
	default:
		return nil
	}

	if amount <= 0 {
		return nil
	}
	return &domain.Price{Amount: amount, Currency: currency, Period: period}
}

func mapSize(candidate map[string]interface{}) *domain.Size {
	sizeMap := asMap(candidate["size"])

	var area float64
	unit := domain.UnitSqft

	switch {
	case sizeMap != nil:
		area = asFloat(sizeMap["area"])
		if u := asString(sizeMap["unit"]); domain.IsKnownUnit(u) {
			unit = u
		}
	case candidate["area"] != nil:
		area = asFloat(candidate["area"])
	default:
		return nil
	}

	if area <= 0 {
		return nil
	}
	return &domain.Size{Area: area, Unit: unit}
}

func mapContact(candidate map[string]interface{}) *domain.Contact {
	contactMap := asMap(candidate["contact"])
	if contactMap == nil {
		return nil
	}
	contact := &domain.Contact{
		Phone:         asString(contactMap["phone"]),
		Email:         asString(contactMap["email"]),
		ContactPerson: asString(contactMap["contactPerson"]),
	}
	if contact.Phone == "" && contact.Email == "" && contact.ContactPerson == "" {
		return nil
	}
	return contact
}

func mapCoordinates(candidate map[string]interface{}) *domain.Coordinates {
	coordsMap := asMap(candidate["coordinates"])
	if coordsMap == nil {
		return nil
	}
	lat, latOK := asFloatStrict(coordsMap["latitude"])
	lng, lngOK := asFloatStrict(coordsMap["longitude"])
	if !latOK || !lngOK {
		return nil
	}
	return &domain.Coordinates{Latitude: lat, Longitude: lng}
}

// filterAbsoluteURLs оставляет только абсолютные http(s)-ссылки.
// Мусор молча выбрасывается из медиа-списка, это не ошибка записи.
func filterAbsoluteURLs(urls []string) []string {
	filtered := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

func stringOrDefault(candidate map[string]interface{}, key, fallback string) string {
	if v := strings.TrimSpace(asString(candidate[key])); v != "" {
		return v
	}
	return fallback
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// asFloat разбирает число или числовую строку; всё прочее — ноль.
func asFloat(v interface{}) float64 {
	f, _ := asFloatStrict(v)
	return f
}

func asFloatStrict(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case json.Number:
		f, err := value.Float64()
		return f, err == nil
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
