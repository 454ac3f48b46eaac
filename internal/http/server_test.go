package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, r.URL.Path)
	})
}

func TestServerHandler(t *testing.T) {
	server := NewServer(
		WithBaseURL("/ns"),
		WithMount("/api/v1/", echoPath()),
		WithBasicAuth("admin", "secret"),
	)

	handler := server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/ns/api/v1/mounts", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if e, g := http.StatusUnauthorized, res.Code; e != g {
		t.Fatalf("anonymous: expected status %d, got %d", e, g)
	}

	req = httptest.NewRequest(http.MethodGet, "/ns/api/v1/mounts", nil)
	req.SetBasicAuth("admin", "secret")
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("authenticated: expected status %d, got %d", e, g)
	}

	if e, g := "/mounts", res.Body.String(); e != g {
		t.Errorf("expected stripped path '%s', got '%s'", e, g)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/mounts", nil)
	req.SetBasicAuth("admin", "secret")
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("outside base url: expected status %d, got %d", e, g)
	}
}

func TestServerServe(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	server := NewServer(WithMount("/api/v1/", echoPath()))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, listener)
	}()

	res, err := http.Get("http://" + listener.Addr().String() + "/api/v1/resolve")
	if err != nil {
		cancel()
		t.Fatalf("%+v", errors.WithStack(err))
	}

	body, err := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if err != nil {
		cancel()
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "/resolve", string(body); e != g {
		t.Errorf("expected body '%s', got '%s'", e, g)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}
