package port

import "context"

// TextAcquirer abstracts the OCR backend that turns a document photo into
// raw text. Implementations return domain.ErrNoTextDetected when the image
// holds no readable text, so callers can tell "blank picture" apart from
// backend failure.
type TextAcquirer interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}
