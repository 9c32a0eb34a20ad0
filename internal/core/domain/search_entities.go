package domain

import "time"

// Типы помещений, которые понимает целевой портал.
const (
	PropertyTypeOffice      = "office"
	PropertyTypeCoworking   = "coworking"
	PropertyTypeRetail      = "retail"
	PropertyTypeWarehouse   = "warehouse"
	PropertyTypeMeetingRoom = "meeting-room"
)

// Варианты меблировки.
const (
	FurnishedFull = "furnished"
	FurnishedSemi = "semi-furnished"
	FurnishedNone = "unfurnished"
)

// Статусы доступности объекта.
const (
	AvailabilityAvailable  = "available"
	AvailabilityOccupied   = "occupied"
	AvailabilityComingSoon = "coming-soon"
)

// Варианты сортировки. SortRelevance — нейтральный порядок портала,
// он кодируется ОТСУТСТВИЕМ query-параметра (см. portalurl).
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
)

const (
	MinPageNumber = 1
	MaxPageNumber = 100
)

// SearchParameters описывает один поисковый запрос к порталу.
// Нулевые значения (пустая строка, nil, 0) означают "параметр не задан".
type SearchParameters struct {
	Location     string   `json:"location,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	MinArea      *float64 `json:"minArea,omitempty"`
	MaxArea      *float64 `json:"maxArea,omitempty"`
	Furnished    string   `json:"furnished,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	SortBy       string   `json:"sortBy,omitempty"`
	Page         int      `json:"page,omitempty"`
}

// SearchPreset — именованный сохраненный набор параметров поиска.
type SearchPreset struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Params    SearchParameters `json:"params"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// IsKnownPropertyType проверяет принадлежность значения закрытому перечислению.
func IsKnownPropertyType(v string) bool {
	switch v {
	case PropertyTypeOffice, PropertyTypeCoworking, PropertyTypeRetail,
		PropertyTypeWarehouse, PropertyTypeMeetingRoom:
		return true
	}
	return false
}

func IsKnownFurnished(v string) bool {
	switch v {
	case FurnishedFull, FurnishedSemi, FurnishedNone:
		return true
	}
	return false
}

func IsKnownAvailability(v string) bool {
	switch v {
	case AvailabilityAvailable, AvailabilityOccupied, AvailabilityComingSoon:
		return true
	}
	return false
}

func IsKnownSort(v string) bool {
	switch v {
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortNewest:
		return true
	}
	return false
}
