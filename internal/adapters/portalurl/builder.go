package portalurl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/swami086/gentle-space-realty-sub007/internal/constants"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// Builder строит URL целевого портала из параметров поиска и разбирает
// их обратно. Построение детерминировано: одинаковые параметры всегда
// дают одну и ту же строку (url.Values.Encode сортирует ключи).
type Builder struct {
	baseURL string
}

func NewBuilder(baseURL string) (*Builder, error) {
	if baseURL == "" {
		baseURL = constants.PortalBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("portalurl: invalid base URL %q: %w", baseURL, err)
	}
	return &Builder{baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// BuildURL валидирует параметры и собирает URL страницы поиска.
// Нейтральная сортировка (relevance) кодируется отсутствием параметра sort —
// при обратном разборе она неотличима от "сортировка не задана".
func (b *Builder) BuildURL(params domain.SearchParameters) (string, error) {
	if err := validateParams(params); err != nil {
		return "", err
	}

	citySegment := constants.PlaceholderSegment
	if params.Location != "" {
		citySegment = Slugify(params.Location)
	}

	typeSegment := constants.PlaceholderSegment
	if params.PropertyType != "" {
		typeSegment = constants.PropertyTypeSegments[params.PropertyType]
	}

	q := url.Values{}
	if params.MinPrice != nil {
		q.Set(constants.ParamBudgetMin, formatNumber(*params.MinPrice))
	}
	if params.MaxPrice != nil {
		q.Set(constants.ParamBudgetMax, formatNumber(*params.MaxPrice))
	}
	if params.MinArea != nil {
		q.Set(constants.ParamAreaMin, formatNumber(*params.MinArea))
	}
	if params.MaxArea != nil {
		q.Set(constants.ParamAreaMax, formatNumber(*params.MaxArea))
	}
	if params.Furnished != "" {
		q.Set(constants.ParamFurnishing, params.Furnished)
	}
	if params.Availability != "" {
		q.Set(constants.ParamAvailability, params.Availability)
	}
	if len(params.Amenities) > 0 {
		q.Set(constants.ParamAmenities, strings.Join(params.Amenities, ","))
	}
	if params.SortBy != "" && params.SortBy != domain.SortRelevance {
		q.Set(constants.ParamSort, params.SortBy)
	}
	if params.Page > 0 {
		q.Set(constants.ParamPage, strconv.Itoa(params.Page))
	}

	built := fmt.Sprintf("%s/listings/%s/%s", b.baseURL, citySegment, typeSegment)
	if encoded := q.Encode(); encoded != "" {
		built += "?" + encoded
	}
	return built, nil
}

// Slugify приводит локацию к сегменту пути: нижний регистр,
// пробелы в дефисы, всё вне [a-z0-9-] отбрасывается.
func Slugify(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	lowered = strings.ReplaceAll(lowered, " ", "-")

	var sb strings.Builder
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func validateParams(params domain.SearchParameters) error {
	if params.PropertyType != "" && !domain.IsKnownPropertyType(params.PropertyType) {
		return &domain.ValidationError{Field: "propertyType", Message: fmt.Sprintf("unknown value %q", params.PropertyType)}
	}
	if params.Furnished != "" && !domain.IsKnownFurnished(params.Furnished) {
		return &domain.ValidationError{Field: "furnished", Message: fmt.Sprintf("unknown value %q", params.Furnished)}
	}
	if params.Availability != "" && !domain.IsKnownAvailability(params.Availability) {
		return &domain.ValidationError{Field: "availability", Message: fmt.Sprintf("unknown value %q", params.Availability)}
	}
	if params.SortBy != "" && !domain.IsKnownSort(params.SortBy) {
		return &domain.ValidationError{Field: "sortBy", Message: fmt.Sprintf("unknown value %q", params.SortBy)}
	}

	if err := validateRange("price", params.MinPrice, params.MaxPrice); err != nil {
		return err
	}
	if err := validateRange("area", params.MinArea, params.MaxArea); err != nil {
		return err
	}

	if params.Page != 0 && (params.Page < domain.MinPageNumber || params.Page > domain.MaxPageNumber) {
		return &domain.ValidationError{
			Field:   "page",
			Message: fmt.Sprintf("must be between %d and %d", domain.MinPageNumber, domain.MaxPageNumber),
		}
	}
	return nil
}

func validateRange(field string, min, max *float64) error {
	if min != nil && *min < 0 {
		return &domain.ValidationError{Field: "min" + titleCase(field), Message: "must not be negative"}
	}
	if max != nil && *max < 0 {
		return &domain.ValidationError{Field: "max" + titleCase(field), Message: "must not be negative"}
	}
	if min != nil && max != nil && *min >= *max {
		return &domain.ValidationError{Field: field, Message: "min must be less than max"}
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
