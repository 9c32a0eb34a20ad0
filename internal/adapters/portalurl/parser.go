package portalurl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/swami086/gentle-space-realty-sub007/internal/constants"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// ParseURL — best-effort обратное отображение URL в параметры поиска.
// Разбор заведомо неполон: нейтральная сортировка и сегменты-заглушки "all"
// декодируются в отсутствующие поля, потому что именно так их кодирует
// BuildURL. Это не баг разбора, а свойство прямого кодирования.
func (b *Builder) ParseURL(rawURL string) (domain.SearchParameters, error) {
	var params domain.SearchParameters

	u, err := url.Parse(rawURL)
	if err != nil {
		return params, fmt.Errorf("portalurl: cannot parse %q: %w", rawURL, err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg != "listings" {
			continue
		}
		rest := segments[i+1:]
		if len(rest) > 0 && rest[0] != constants.PlaceholderSegment {
			// Слаг восстанавливаем как локацию с пробелами вместо дефисов.
			params.Location = strings.ReplaceAll(rest[0], "-", " ")
		}
		if len(rest) > 1 && rest[1] != constants.PlaceholderSegment {
			params.PropertyType = propertyTypeFromSegment(rest[1])
		}
		break
	}

	q := u.Query()
	params.MinPrice = parseFloatParam(q, constants.ParamBudgetMin)
	params.MaxPrice = parseFloatParam(q, constants.ParamBudgetMax)
	params.MinArea = parseFloatParam(q, constants.ParamAreaMin)
	params.MaxArea = parseFloatParam(q, constants.ParamAreaMax)

	if v := q.Get(constants.ParamFurnishing); domain.IsKnownFurnished(v) {
		params.Furnished = v
	}
	if v := q.Get(constants.ParamAvailability); domain.IsKnownAvailability(v) {
		params.Availability = v
	}
	if v := q.Get(constants.ParamAmenities); v != "" {
		params.Amenities = strings.Split(v, ",")
	}
	if v := q.Get(constants.ParamSort); domain.IsKnownSort(v) {
		params.SortBy = v
	}
	if v := q.Get(constants.ParamPage); v != "" {
		if page, convErr := strconv.Atoi(v); convErr == nil {
			params.Page = page
		}
	}

	return params, nil
}

func propertyTypeFromSegment(segment string) string {
	for propertyType, s := range constants.PropertyTypeSegments {
		if s == segment {
			return propertyType
		}
	}
	return ""
}

func parseFloatParam(q url.Values, key string) *float64 {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
