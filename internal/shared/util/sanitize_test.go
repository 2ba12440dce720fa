package util

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" cv/final\\v2.pdf ", "cv_final_v2.pdf"},
		{"cv\x00\x07.docx", "cv.docx"},
		{"Résumé.txt", "Résumé.txt"},
	}
	for _, tt := range tests {
		got, err := SanitizeFileName(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	for _, bad := range []string{"../etc/passwd", "   ", "\x00\x01", "."} {
		if _, err := SanitizeFileName(bad); !errors.Is(err, ErrInvalidFileName) {
			t.Fatalf("expected ErrInvalidFileName for %q, got %v", bad, err)
		}
	}
}

func TestSanitizeFileNameTruncatesKeepingExtension(t *testing.T) {
	long := strings.Repeat("é", 200) + ".pdf"
	got, err := SanitizeFileName(long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > maxFileNameBytes {
		t.Fatalf("expected at most %d bytes, got %d", maxFileNameBytes, len(got))
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("expected extension kept, got %q", got[len(got)-8:])
	}
	if !strings.HasPrefix(got, "éé") || strings.ContainsRune(got, '�') {
		t.Fatalf("expected valid UTF-8 stem, got %q", got[:8])
	}
}
