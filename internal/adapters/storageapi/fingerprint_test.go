package storageapi

import (
	"testing"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

func fingerprintRecord() domain.CanonicalPropertyRecord {
	return domain.CanonicalPropertyRecord{
		Title:       "Office floor in Indiranagar",
		Description: "Full floor with fitted workstations",
		Location:    "Indiranagar, Bangalore",
		Coordinates: &domain.Coordinates{Latitude: 12.9784, Longitude: 77.6408},
		Size:        &domain.Size{Area: 2400, Unit: domain.UnitSqft},
		Price:       &domain.Price{Amount: 120000, Currency: domain.CurrencyINR, Period: domain.PeriodMonthly},
	}
}

func TestFingerprintIgnoresRewrittenText(t *testing.T) {
	a := fingerprintRecord()
	b := fingerprintRecord()
	b.Title = "PRIME office floor, Indiranagar 100ft Road!"
	b.Description = "Completely different marketing copy"

	if recordFingerprint(a) != recordFingerprint(b) {
		t.Fatalf("text rewrites must not change the fingerprint")
	}
}

func TestFingerprintNearbyAreasShareBucket(t *testing.T) {
	a := fingerprintRecord()
	b := fingerprintRecord()
	b.Size.Area = 2420 // та же корзина площади

	if recordFingerprint(a) != recordFingerprint(b) {
		t.Fatalf("areas within one bucket must share a fingerprint")
	}
}

func TestFingerprintDifferentLocationsDiffer(t *testing.T) {
	a := fingerprintRecord()
	b := fingerprintRecord()
	b.Coordinates = &domain.Coordinates{Latitude: 13.0827, Longitude: 80.2707} // Chennai

	if recordFingerprint(a) == recordFingerprint(b) {
		t.Fatalf("different cities must not share a fingerprint")
	}
}

func TestFingerprintFallsBackToLocationText(t *testing.T) {
	a := fingerprintRecord()
	a.Coordinates = nil
	b := fingerprintRecord()
	b.Coordinates = nil
	b.Location = "  INDIRANAGAR, Bangalore "

	if recordFingerprint(a) != recordFingerprint(b) {
		t.Fatalf("location text must be normalized before fingerprinting")
	}
}
