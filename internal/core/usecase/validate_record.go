package usecase

import (
	"fmt"
	"strings"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

const (
	minTitleLen       = 5
	minDescriptionLen = 10
	minLocationLen    = 3
	minPhoneLen       = 8
)

// ValidateRecord — чистая проверка бизнес-правил. Возвращает список
// замечаний; запись никогда не отбрасывается и не изменяется.
func ValidateRecord(record domain.CanonicalPropertyRecord) []string {
	issues := []string{}

	title := strings.TrimSpace(record.Title)
	if len(title) < minTitleLen {
		issues = append(issues, fmt.Sprintf("title must be at least %d characters long", minTitleLen))
	}
	if containsPlaceholderMarker(title) {
		issues = append(issues, "title contains placeholder text")
	}

	description := strings.TrimSpace(record.Description)
	if len(description) < minDescriptionLen {
		issues = append(issues, fmt.Sprintf("description must be at least %d characters long", minDescriptionLen))
	}
	if strings.Contains(strings.ToLower(description), "lorem ipsum") {
		issues = append(issues, "description contains placeholder text")
	}

	if len(strings.TrimSpace(record.Location)) < minLocationLen {
		issues = append(issues, fmt.Sprintf("location must be at least %d characters long", minLocationLen))
	}

	if record.Price != nil {
		if record.Price.Amount <= 0 {
			issues = append(issues, "price amount must be greater than zero")
		}
		if !domain.IsKnownCurrency(record.Price.Currency) {
			issues = append(issues, fmt.Sprintf("price currency %q is not supported", record.Price.Currency))
		}
	}

	if record.Size != nil {
		if record.Size.Area <= 0 {
			issues = append(issues, "size area must be greater than zero")
		}
		if !domain.IsKnownUnit(record.Size.Unit) {
			issues = append(issues, fmt.Sprintf("size unit %q is not supported", record.Size.Unit))
		}
	}

	if record.Contact != nil {
		if record.Contact.Phone != "" && !looksLikePhone(record.Contact.Phone) {
			issues = append(issues, "contact phone does not look like a valid phone number")
		}
		if record.Contact.Email != "" && !strings.Contains(record.Contact.Email, "@") {
			issues = append(issues, "contact email does not look like a valid email address")
		}
	}

	// Про битые изображения сообщаем один раз на запись,
	// чтобы не раздувать список замечаний.
	for _, image := range record.Media.Images {
		if !strings.HasPrefix(image, "http") {
			issues = append(issues, fmt.Sprintf("media image %q is not an absolute http(s) URL", image))
			break
		}
	}

	return issues
}

func containsPlaceholderMarker(s string) bool {
	lowered := strings.ToLower(s)
	return strings.Contains(lowered, "placeholder") || strings.Contains(lowered, "lorem ipsum")
}

// looksLikePhone — нестрогая проверка: цифры и телефонные символы,
// длиной не меньше minPhoneLen.
func looksLikePhone(phone string) bool {
	trimmed := strings.TrimSpace(phone)
	if len(trimmed) < minPhoneLen {
		return false
	}
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return true
}
