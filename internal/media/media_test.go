package media

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestEncodePNG(t *testing.T) {
	// Minimal PNG signature, enough for content sniffing.
	blob := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")

	got, err := Encode(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Fatalf("unexpected data URI prefix: %q", got)
	}

	payload := strings.TrimPrefix(got, "data:image/png;base64,")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, blob) {
		t.Error("decoded payload differs from the original blob")
	}
}

func TestEncodeUnknownTypeFallsBackToOctetStream(t *testing.T) {
	got, err := Encode(bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03}))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.HasPrefix(got, "data:application/octet-stream;base64,") {
		t.Errorf("unexpected data URI prefix: %q", got)
	}
}

func TestEncodeFileMissing(t *testing.T) {
	if _, err := EncodeFile("/nonexistent/blob.png"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
