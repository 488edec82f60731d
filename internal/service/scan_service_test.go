package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilagsky/internal/config"
	"bilagsky/internal/domain"
)

// pngBytes is a minimal payload with a real PNG signature so the
// magic-byte check passes.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func scanInput(userID uuid.UUID, name string, content []byte) ScanInput {
	return ScanInput{
		UserID: userID,
		File:   memFile{bytes.NewReader(content)},
		Header: &multipart.FileHeader{Filename: name, Size: int64(len(content))},
	}
}

func testS3Config() *config.S3Config {
	return &config.S3Config{Bucket: "test-bucket", MaxFileSizeMB: 5, PresignExpiry: 60}
}

func TestScan_ProducesSuggestion(t *testing.T) {
	userID := uuid.New()
	repo := newFakeScanRepo()
	storage := newFakeStorage()
	acquirer := &fakeAcquirer{text: "KIWI HATLANE\nSalgskvittering\nORG. NR. 982 464 602 MVA\n13.04.2023\n"}

	svc := NewScanService(repo, storage, acquirer, nil, testS3Config())
	scan, err := svc.Scan(context.Background(), scanInput(userID, "kvittering.png", pngBytes))
	require.NoError(t, err)

	assert.Equal(t, domain.ScanStatusSuggested, scan.Status)
	assert.Equal(t, domain.DocumentKindReceipt, scan.Kind)
	require.NotNil(t, scan.Suggestion)

	var suggestion map[string]any
	require.NoError(t, json.Unmarshal(scan.Suggestion, &suggestion))
	assert.Equal(t, "KIWI HATLANE", suggestion["supplier_name"])
	assert.Equal(t, "982464602", suggestion["organization_number"])

	// original image is archived and the record persisted
	assert.Len(t, storage.objects, 1)
	stored, err := repo.GetByID(context.Background(), userID, scan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ScanStatusSuggested, stored.Status)
}

func TestScan_NoTextIsRecordedNotFailed(t *testing.T) {
	userID := uuid.New()
	repo := newFakeScanRepo()
	storage := newFakeStorage()
	acquirer := &fakeAcquirer{err: domain.ErrNoTextDetected}

	svc := NewScanService(repo, storage, acquirer, nil, testS3Config())
	scan, err := svc.Scan(context.Background(), scanInput(userID, "blankt.png", pngBytes))
	require.NoError(t, err)

	assert.Equal(t, domain.ScanStatusNoText, scan.Status)
	assert.Nil(t, scan.Suggestion)
	assert.Empty(t, scan.ScanError)
	// the photo is still archived
	assert.Len(t, storage.objects, 1)
}

func TestScan_AcquirerFailureIsRecorded(t *testing.T) {
	userID := uuid.New()
	repo := newFakeScanRepo()
	acquirer := &fakeAcquirer{err: errors.New("vision API error (status 500)")}

	svc := NewScanService(repo, newFakeStorage(), acquirer, nil, testS3Config())
	scan, err := svc.Scan(context.Background(), scanInput(userID, "bilde.png", pngBytes))
	require.NoError(t, err)

	assert.Equal(t, domain.ScanStatusFailed, scan.Status)
	assert.Contains(t, scan.ScanError, "vision API error")
	assert.Nil(t, scan.Suggestion)
}

func TestScan_RejectsUnsupportedExtension(t *testing.T) {
	svc := NewScanService(newFakeScanRepo(), newFakeStorage(), &fakeAcquirer{}, nil, testS3Config())
	_, err := svc.Scan(context.Background(), scanInput(uuid.New(), "dokument.gif", pngBytes))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestScan_RejectsRenamedFile(t *testing.T) {
	svc := NewScanService(newFakeScanRepo(), newFakeStorage(), &fakeAcquirer{}, nil, testS3Config())
	gif := append([]byte("GIF89a"), make([]byte, 32)...)
	_, err := svc.Scan(context.Background(), scanInput(uuid.New(), "bilde.png", gif))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestScan_RejectsOversizedFile(t *testing.T) {
	cfg := &config.S3Config{Bucket: "b", MaxFileSizeMB: 1}
	svc := NewScanService(newFakeScanRepo(), newFakeStorage(), &fakeAcquirer{}, nil, cfg)

	input := scanInput(uuid.New(), "stor.png", pngBytes)
	input.Header.Size = 2 * 1024 * 1024
	_, err := svc.Scan(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestScan_UploadFailureAborts(t *testing.T) {
	repo := newFakeScanRepo()
	storage := newFakeStorage()
	storage.uploadErr = errors.New("connection refused")

	svc := NewScanService(repo, storage, &fakeAcquirer{text: "tekst"}, nil, testS3Config())
	_, err := svc.Scan(context.Background(), scanInput(uuid.New(), "bilde.png", pngBytes))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Empty(t, repo.scans)
}

func TestScan_DeleteRemovesObjectAndRecord(t *testing.T) {
	userID := uuid.New()
	repo := newFakeScanRepo()
	storage := newFakeStorage()
	svc := NewScanService(repo, storage, &fakeAcquirer{text: "Faktura\n"}, nil, testS3Config())

	scan, err := svc.Scan(context.Background(), scanInput(userID, "faktura.png", pngBytes))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, scan.ID))
	assert.Empty(t, storage.objects)
	_, err = svc.GetByID(context.Background(), userID, scan.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
