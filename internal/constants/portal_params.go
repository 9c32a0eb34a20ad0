package constants

// Базовый URL целевого портала коммерческой недвижимости.
const PortalBaseURL = "https://www.officemarket.in"

// Сегменты пути для типов помещений.
// Ключ — значение domain.PropertyType*, значение — сегмент URL портала.
var PropertyTypeSegments = map[string]string{
	"office":       "office-space",
	"coworking":    "coworking-space",
	"retail":       "retail-space",
	"warehouse":    "warehouse-space",
	"meeting-room": "meeting-room",
}

// PlaceholderSegment подставляется в путь, когда город или тип не заданы.
const PlaceholderSegment = "all"

// Имена query-параметров портала.
const (
	ParamBudgetMin    = "budgetMin"
	ParamBudgetMax    = "budgetMax"
	ParamAreaMin      = "areaMin"
	ParamAreaMax      = "areaMax"
	ParamFurnishing   = "furnishing"
	ParamAvailability = "availability"
	ParamAmenities    = "amenities"
	ParamSort         = "sort"
	ParamPage         = "page"
)
