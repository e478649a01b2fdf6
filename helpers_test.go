package hxfrp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
)

func TestRenderWritesHTML(t *testing.T) {
	comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<b>hi</b>")
		return err
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if err := Render(rec, req, comp); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q, want %q", got, "text/html; charset=utf-8")
	}
	if rec.Body.String() != "<b>hi</b>" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "<b>hi</b>")
	}
}

func TestIsHTMX(t *testing.T) {
	tests := []struct {
		name   string
		header string
		expect bool
	}{
		{"with HX-Request true", "true", true},
		{"with HX-Request false", "false", false},
		{"without header", "", false},
		{"with other value", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("HX-Request", tt.header)
			}

			result := IsHTMX(req)
			if result != tt.expect {
				t.Errorf("IsHTMX() = %v, want %v", result, tt.expect)
			}
		})
	}
}

func TestTriggerAndTargetID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if TriggerID(req) != "" || TargetID(req) != "" {
		t.Error("expected empty ids without headers")
	}

	req.Header.Set("HX-Trigger", "hxfrp-abc-h1")
	req.Header.Set("HX-Target", "hxfrp-abc")
	if got := TriggerID(req); got != "hxfrp-abc-h1" {
		t.Errorf("TriggerID() = %q, want %q", got, "hxfrp-abc-h1")
	}
	if got := TargetID(req); got != "hxfrp-abc" {
		t.Errorf("TargetID() = %q, want %q", got, "hxfrp-abc")
	}
}
