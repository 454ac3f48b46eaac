package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware(t *testing.T) {
	handler := Middleware(Options{
		Interval:  time.Hour,
		MaxBurst:  2,
		CacheSize: 16,
		CacheTTL:  time.Minute,
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		return res
	}

	for i := 0; i < 2; i++ {
		if e, g := http.StatusNoContent, do("10.0.0.1:1234").Code; e != g {
			t.Fatalf("request #%d: expected status %d, got %d", i, e, g)
		}
	}

	res := do("10.0.0.1:4321")
	if e, g := http.StatusTooManyRequests, res.Code; e != g {
		t.Fatalf("expected status %d, got %d", e, g)
	}

	if res.Header().Get("Retry-After") == "" {
		t.Errorf("expected Retry-After header to be set")
	}

	if e, g := http.StatusNoContent, do("10.0.0.2:1234").Code; e != g {
		t.Errorf("other client: expected status %d, got %d", e, g)
	}
}

func TestGetRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.0.1:5000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if e, g := "192.168.0.1", getRemoteAddr(req, false); e != g {
		t.Errorf("untrusted: expected '%s', got '%s'", e, g)
	}

	if e, g := "203.0.113.7", getRemoteAddr(req, true); e != g {
		t.Errorf("trusted: expected '%s', got '%s'", e, g)
	}
}
