package domain

import "time"

// Валюты, периоды оплаты и единицы площади — закрытые перечисления каталога.
const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"

	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
	PeriodOneTime = "one-time"

	UnitSqft  = "sqft"
	UnitSeats = "seats"
)

// Происхождение записи: структурированный парсинг или AI-доизвлечение.
const (
	ExtractedByScrape = "scrape"
	ExtractedByAI     = "ai"
)

// Полосы уверенности — только для отображения ревьюеру,
// никогда для автоматического одобрения.
const (
	ConfidenceBandHigh   = "high"
	ConfidenceBandMedium = "medium"
	ConfidenceBandLow    = "low"
)

// Price — составное опциональное поле: либо заполнено целиком, либо nil.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Period   string  `json:"period"`
}

// Size — составное опциональное поле: либо заполнено целиком, либо nil.
type Size struct {
	Area float64 `json:"area"`
	Unit string  `json:"unit"`
}

type Contact struct {
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	ContactPerson string `json:"contactPerson,omitempty"`
}

type Media struct {
	Images []string `json:"images"`
	Videos []string `json:"videos"`
}

type Availability struct {
	Status string `json:"status"`
}

// Coordinates заполняются, только если источник отдал распознаваемую пару.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ExtractionProvenance описывает, как и с какой уверенностью
// были заполнены поля записи.
type ExtractionProvenance struct {
	ExtractedBy     string   `json:"extractedBy"`
	Confidence      *float64 `json:"confidence,omitempty"`
	FieldsExtracted []string `json:"fieldsExtracted"`
	FieldsMissing   []string `json:"fieldsMissing"`
	Warnings        []string `json:"warnings,omitempty"`
}

// CanonicalPropertyRecord — нормализованное представление одного объявления.
// Обязательные поля (Title, Description, Location) заполняются заглушками
// при отсутствии в источнике; брак ловит валидатор, а не трансформер.
type CanonicalPropertyRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`

	Price     *Price          `json:"price,omitempty"`
	Size      *Size           `json:"size,omitempty"`
	Amenities []string        `json:"amenities,omitempty"`
	Features  map[string]bool `json:"features,omitempty"`
	Contact   *Contact        `json:"contact,omitempty"`

	Media        Media        `json:"media"`
	Availability Availability `json:"availability"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`

	SourceURL string    `json:"sourceUrl"`
	ScrapedAt time.Time `json:"scrapedAt"`

	ValidationErrors []string `json:"validationErrors"`

	// RawData — непрозрачный слепок исходного кандидата, только для аудита.
	RawData map[string]interface{} `json:"rawData,omitempty"`

	Provenance ExtractionProvenance `json:"extractionProvenance"`
}

// ConfidenceBand возвращает полосу уверенности для reviewer UI.
func ConfidenceBand(score float64) string {
	switch {
	case score >= 0.8:
		return ConfidenceBandHigh
	case score >= 0.5:
		return ConfidenceBandMedium
	default:
		return ConfidenceBandLow
	}
}

func IsKnownCurrency(v string) bool {
	switch v {
	case CurrencyINR, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

func IsKnownPeriod(v string) bool {
	switch v {
	case PeriodMonthly, PeriodYearly, PeriodOneTime:
		return true
	}
	return false
}

func IsKnownUnit(v string) bool {
	switch v {
	case UnitSqft, UnitSeats:
		return true
	}
	return false
}
