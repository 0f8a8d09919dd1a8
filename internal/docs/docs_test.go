package docs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTopics(t *testing.T) {
	want := []string{"config", "formats", "keys", "locales", "tokens"}
	if diff := cmp.Diff(want, Topics()); diff != "" {
		t.Fatalf("topics mismatch (-want +got):\n%s", diff)
	}
}

func TestGet(t *testing.T) {
	md, ok := Get(" Tokens ")
	if !ok {
		t.Fatalf("expected tokens topic")
	}
	if !strings.HasPrefix(md, "# Format tokens") {
		t.Fatalf("unexpected content %q", md[:20])
	}
	if _, ok := Get("../docs"); ok {
		t.Fatalf("expected path outside content to be unknown")
	}
	if _, ok := Get(""); ok {
		t.Fatalf("expected empty topic to be unknown")
	}
}

func TestRender(t *testing.T) {
	out, err := Render("keys", "notty", 60)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Editing keys") || !strings.Contains(out, "ctrl+a") {
		t.Fatalf("expected rendered topic, got:\n%s", out)
	}

	again, err := Render("keys", "notty", 60)
	if err != nil || again != out {
		t.Fatalf("expected cached renderer to give the same output")
	}

	if _, err := Render("nope", "notty", 60); err == nil {
		t.Fatalf("expected unknown topic to fail")
	}
	if _, err := Render("keys", "sepia", 60); err == nil {
		t.Fatalf("expected unknown style to fail")
	}
}
