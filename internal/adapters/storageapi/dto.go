package storageapi

import "github.com/swami086/gentle-space-realty-sub007/internal/core/domain"

type bulkPropertyDTO struct {
	domain.CanonicalPropertyRecord
	Fingerprint string `json:"fingerprint"`
}

type bulkImportRequestDTO struct {
	Properties        []bulkPropertyDTO `json:"properties"`
	SkipValidation    bool              `json:"skipValidation,omitempty"`
	OverwriteExisting bool              `json:"overwriteExisting,omitempty"`
}

type bulkImportResponseDTO struct {
	Imported   int                  `json:"imported"`
	Failed     int                  `json:"failed"`
	Errors     []bulkImportErrorDTO `json:"errors,omitempty"`
	CreatedIDs []string             `json:"createdIds,omitempty"`
}

type bulkImportErrorDTO struct {
	Index   int    `json:"index"`
	Message string `json:"error"`
}
