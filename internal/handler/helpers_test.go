package handler

import (
	"net/http/httptest"
	"testing"
)

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/x", 1, 10, 0},
		{"explicit", "/x?page=3&limit=20", 3, 20, 40},
		{"zero page", "/x?page=0", 1, 10, 0},
		{"negative page", "/x?page=-5", 1, 10, 0},
		{"limit clamped high", "/x?limit=9999", 1, 100, 0},
		{"limit clamped low", "/x?limit=0", 1, 1, 0},
		{"garbage values", "/x?page=abc&limit=xyz", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			page, limit, offset := pagination(r)
			if page != tt.wantPage || limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got page=%d limit=%d offset=%d, want %d/%d/%d",
					page, limit, offset, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if got := clampInt(5, 1, 10); got != 5 {
		t.Errorf("in range: got %d", got)
	}
	if got := clampInt(-3, 1, 10); got != 1 {
		t.Errorf("below: got %d", got)
	}
	if got := clampInt(50, 1, 10); got != 10 {
		t.Errorf("above: got %d", got)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, 404, "Page not found")

	if rr.Code != 404 {
		t.Errorf("status: got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	want := `{"error":{"code":404,"message":"Page not found"}}` + "\n"
	if rr.Body.String() != want {
		t.Errorf("body: got %q, want %q", rr.Body.String(), want)
	}
}
