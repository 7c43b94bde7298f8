package utils

import (
	"strings"
	"testing"
)

func TestCompressAndDecompressText(t *testing.T) {
	original := strings.Repeat("Cell biology covers the structure and function of the cell. ", 50)

	compressed, algorithm, err := CompressText(original)
	if err != nil {
		t.Fatalf("CompressText returned error: %v", err)
	}
	if algorithm != CompressionGzip {
		t.Errorf("large text should use gzip, got %s", algorithm)
	}
	if len(compressed) >= len(original) {
		t.Errorf("compression did not shrink payload: %d >= %d", len(compressed), len(original))
	}

	text, err := DecompressText(compressed, algorithm)
	if err != nil {
		t.Fatalf("DecompressText returned error: %v", err)
	}
	if text != original {
		t.Error("round trip did not preserve text")
	}
}

func TestCompressTextSmallPayloadSkipsCompression(t *testing.T) {
	compressed, algorithm, err := CompressText("short")
	if err != nil {
		t.Fatalf("CompressText returned error: %v", err)
	}
	if algorithm != CompressionNone {
		t.Errorf("small text should skip compression, got %s", algorithm)
	}
	if string(compressed) != "short" {
		t.Errorf("uncompressed payload altered: %q", compressed)
	}
}

func TestDecompressDataZlib(t *testing.T) {
	data := []byte(strings.Repeat("flashcard", 100))

	compressed, err := CompressData(data, CompressionZlib)
	if err != nil {
		t.Fatalf("CompressData returned error: %v", err)
	}

	out, err := DecompressData(compressed, CompressionZlib)
	if err != nil {
		t.Fatalf("DecompressData returned error: %v", err)
	}
	if string(out) != string(data) {
		t.Error("zlib round trip did not preserve data")
	}
}

func TestCompressDataUnknownAlgorithm(t *testing.T) {
	if _, err := CompressData([]byte("data"), CompressionAlgorithm("lz4")); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
}
