package constants

// Имя обменника для событий экстрактора
const ExchangeName = "extractor_exchange"

// Ключи маршрутизации
const (
	RoutingKeyExtractionReports = "extractor.run.report"
	RoutingKeyImportReports     = "extractor.import.report"
)
