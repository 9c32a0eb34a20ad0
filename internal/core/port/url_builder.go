package port

import "github.com/swami086/gentle-space-realty-sub007/internal/core/domain"

// SearchURLPort — построение URL портала из параметров поиска и обратный
// best-effort разбор. Разбор заведомо lossy для полей, чье значение по
// умолчанию кодируется отсутствием параметра (нейтральная сортировка).
type SearchURLPort interface {
	BuildURL(params domain.SearchParameters) (string, error)
	ParseURL(rawURL string) (domain.SearchParameters, error)
}
