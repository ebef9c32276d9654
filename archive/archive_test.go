package archive

import (
	"errors"
	"testing"

	"github.com/KhadeerBasha1232/letter-backend/core"
)

func TestParseReference(t *testing.T) {
	fileID, err := ParseReference("https://archive.local/d/01HXYZABC/view")
	if err != nil {
		t.Fatalf("ParseReference() failed: %v", err)
	}
	if fileID != "01HXYZABC" {
		t.Errorf("expected file id 01HXYZABC, got %q", fileID)
	}
}

func TestParseReferenceMalformed(t *testing.T) {
	for _, ref := range []string{"", "https://archive.local/view", "not a link", "/d//view"} {
		if _, err := ParseReference(ref); !errors.Is(err, core.ErrMalformedReference) {
			t.Errorf("ParseReference(%q): expected ErrMalformedReference, got %v", ref, err)
		}
	}
}
