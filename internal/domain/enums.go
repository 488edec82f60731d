package domain

// FileType represents the allowed file types for scan upload.
type FileType string

const (
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
	FileTypePDF FileType = "pdf"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
	FileTypePDF: "application/pdf",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"pdf":  FileTypePDF,
}

// DocumentKind is the classification of a scanned document.
type DocumentKind string

const (
	DocumentKindReceipt DocumentKind = "receipt"
	DocumentKindInvoice DocumentKind = "invoice"
)

// ScanStatus represents the outcome of processing an uploaded photo.
type ScanStatus string

const (
	// ScanStatusSuggested means text was detected and a field suggestion
	// (possibly sparse) was produced.
	ScanStatusSuggested ScanStatus = "suggested"
	// ScanStatusNoText means the image was stored but the text-detection
	// backend found no usable text, so no suggestion exists.
	ScanStatusNoText ScanStatus = "no_text"
	// ScanStatusFailed means processing errored before a suggestion could
	// be attempted.
	ScanStatusFailed ScanStatus = "failed"
)

// PurchaseKind mirrors Fiken's purchase kinds.
type PurchaseKind string

const (
	PurchaseKindSupplier PurchaseKind = "SUPPLIER"
	PurchaseKindCash     PurchaseKind = "CASH_PURCHASE"
)

// SaleKind mirrors Fiken's sale kinds.
type SaleKind string

const (
	SaleKindInvoice SaleKind = "INVOICE"
	SaleKindCash    SaleKind = "CASH_SALE"
)
