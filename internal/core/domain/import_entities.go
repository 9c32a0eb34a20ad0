package domain

// BulkImportRequest — одобренное ревьюером подмножество записей,
// передаваемое коллаборатору-хранилищу как есть.
type BulkImportRequest struct {
	Records           []CanonicalPropertyRecord `json:"records"`
	SkipValidation    bool                      `json:"skipValidation,omitempty"`
	OverwriteExisting bool                      `json:"overwriteExisting,omitempty"`
}

type BulkImportError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BulkImportResult — ответ хранилища; постоянные идентификаторы
// записям назначает оно, не мы.
type BulkImportResult struct {
	Imported   int               `json:"imported"`
	Failed     int               `json:"failed"`
	Errors     []BulkImportError `json:"errors"`
	CreatedIDs []string          `json:"createdIds"`
}
