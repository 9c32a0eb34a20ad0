package storageapi

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mmcloughlin/geohash"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// Точность ~5 км: объявления одного здания попадают в одну ячейку,
// соседние районы — в разные.
const geohashPrecision = 5

func normalizeAreaToBucket(area float64, bucketSize float64) string {
	if bucketSize <= 0 {
		bucketSize = 1.0
	}
	return fmt.Sprintf("%d", int(area/bucketSize))
}

// buildFingerprintPayload создает стабильную строку из ключевых полей записи.
// Заголовок и описание не участвуют: их порталы переписывают чаще,
// чем сам объект меняется.
func buildFingerprintPayload(rec domain.CanonicalPropertyRecord) string {
	parts := []string{}

	if rec.Coordinates != nil {
		geohsh := geohash.Encode(rec.Coordinates.Latitude, rec.Coordinates.Longitude)
		parts = append(parts, geohsh[:geohashPrecision])
	} else {
		parts = append(parts, strings.ToLower(strings.TrimSpace(rec.Location)))
	}

	if rec.Size != nil {
		parts = append(parts, normalizeAreaToBucket(rec.Size.Area, 50.0), rec.Size.Unit)
	} else {
		parts = append(parts, "null")
	}

	if rec.Price != nil {
		parts = append(parts, fmt.Sprintf("%s/%s", rec.Price.Currency, rec.Price.Period))
	} else {
		parts = append(parts, "null")
	}

	return strings.Join(parts, "|")
}

// recordFingerprint вычисляет SHA256-отпечаток записи для дедупликации
// на стороне каталога.
func recordFingerprint(rec domain.CanonicalPropertyRecord) string {
	h := sha256.New()
	h.Write([]byte(buildFingerprintPayload(rec)))
	return fmt.Sprintf("%x", h.Sum(nil))
}
