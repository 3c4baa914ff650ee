// Package media encodes image and audio blobs as data URIs so flashcard
// sides embed them inline instead of referencing external URLs. Inline
// storage bounds total local capacity; size and type limits are the
// upload UI's concern.
package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Encode reads a whole blob and returns it as a data-URI string. The
// MIME type is sniffed from the content.
func Encode(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read media blob: %v", err)
	}

	mimeType := http.DetectContentType(data)
	encoded := base64.StdEncoding.EncodeToString(data)

	return fmt.Sprintf("data:%s;base64,%s", mimeType, encoded), nil
}

// EncodeFile encodes the file at path as a data-URI string.
func EncodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open media file: %v", err)
	}
	defer f.Close()

	return Encode(f)
}
