package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, target string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "/")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", p.Offset)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	p := paramsFor(t, "/?limit=50&offset=10")
	if p.Limit != 50 {
		t.Errorf("expected limit 50, got %d", p.Limit)
	}
	if p.Offset != 10 {
		t.Errorf("expected offset 10, got %d", p.Offset)
	}
}

func TestFromContext_MaxLimit(t *testing.T) {
	p := paramsFor(t, "/?limit=500")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContext_InvalidValues(t *testing.T) {
	p := paramsFor(t, "/?limit=abc&offset=-4")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit, got %d", p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestNewResponse(t *testing.T) {
	r := NewResponse([]string{"a", "b"}, 5, 2, 0)
	if !r.HasMore {
		t.Error("expected HasMore true")
	}
	if r.Links != nil {
		t.Error("expected no links by default")
	}

	last := NewResponse([]string{"e"}, 5, 2, 4)
	if last.HasMore {
		t.Error("expected HasMore false on last page")
	}
}

func TestParams_PreviousOffset(t *testing.T) {
	if got := (Params{Limit: 10, Offset: 5}).PreviousOffset(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := (Params{Limit: 10, Offset: 25}).PreviousOffset(); got != 15 {
		t.Errorf("expected 15, got %d", got)
	}
}

func TestResponse_WithLinks(t *testing.T) {
	first := NewResponse(nil, 30, 10, 0).WithLinks("/api/v1/patients")
	if first.Links.Self != "/api/v1/patients?offset=0&limit=10" {
		t.Errorf("unexpected self link %q", first.Links.Self)
	}
	if first.Links.Next != "/api/v1/patients?offset=10&limit=10" {
		t.Errorf("unexpected next link %q", first.Links.Next)
	}
	if first.Links.Previous != "" {
		t.Errorf("expected no previous link, got %q", first.Links.Previous)
	}

	last := NewResponse(nil, 30, 10, 20).WithLinks("/api/v1/patients")
	if last.Links.Next != "" {
		t.Errorf("expected no next link, got %q", last.Links.Next)
	}
	if last.Links.Previous != "/api/v1/patients?offset=10&limit=10" {
		t.Errorf("unexpected previous link %q", last.Links.Previous)
	}
}
