package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"saenggibu-backend/internal/shared/storage/object"
)

const mimePDF = "application/pdf"

// IsPDF reports whether the upload should be handled as a PDF rather
// than sent through OCR.
func IsPDF(mimeType, fileName string) bool {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == mimePDF {
		return true
	}
	return strings.ToLower(filepath.Ext(fileName)) == ".pdf"
}

// Text extracts plain text from an in-memory PDF payload.
func Text(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

type keySaver interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}

// SaveExtracted persists a derived .extracted.txt copy next to the scan.
func SaveExtracted(ctx context.Context, store object.ObjectStore, fileKey string, text string) error {
	saver, ok := store.(keySaver)
	if !ok {
		return errors.New("object store does not support SaveWithKey")
	}
	key := fileKey + ".extracted.txt"
	if _, err := saver.SaveWithKey(ctx, key, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return fmt.Errorf("save extracted key=%s: %w", key, err)
	}
	return nil
}
