package util

import "testing"

func TestTextDigest(t *testing.T) {
	got := TextDigest("Experience\n- Led a team")
	if got != TextDigest("  Experience\n- Led a team\n\n") {
		t.Fatalf("expected trimmed texts to share a digest")
	}
	if got == TextDigest("Experience\n- Led a team of two") {
		t.Fatalf("expected different texts to differ")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("digest contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestContentDigestKeepsWhitespace(t *testing.T) {
	if ContentDigest("\v- Led the team") == ContentDigest("- Led the team") {
		t.Fatalf("expected leading whitespace to change the digest")
	}
	if ContentDigest("cv") != ContentDigest("cv") {
		t.Fatalf("expected identical texts to share a digest")
	}
}
