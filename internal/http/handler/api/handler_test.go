package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/bornholm/mountns/internal/atexit"
	"github.com/bornholm/mountns/internal/filesystem/backend"
	"github.com/bornholm/mountns/internal/mount"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	_ "github.com/bornholm/mountns/internal/filesystem/backend/memory"
)

func newTestHandler() (*Handler, *atexit.Hooks) {
	hooks := atexit.New()
	registry := mount.New(mount.WithExitRegistrar(hooks))
	return NewHandler(registry, backend.New), hooks
}

func doRequest(t *testing.T, h http.Handler, method string, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buff bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buff).Encode(body); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	req := httptest.NewRequest(method, target, &buff)
	res := httptest.NewRecorder()

	h.ServeHTTP(res, req)

	return res
}

func decodeResponse[T any](t *testing.T, res *httptest.ResponseRecorder) T {
	t.Helper()

	var payload T
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return payload
}

func assertStatus(t *testing.T, res *httptest.ResponseRecorder, expected int) {
	t.Helper()

	if e, g := expected, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d (%s)", e, g, res.Body.String())
	}
}

func TestHandlerMountLifecycle(t *testing.T) {
	h, hooks := newTestHandler()
	defer hooks.Run()

	res := doRequest(t, h, http.MethodPost, "/mounts", CreateMountRequest{Target: "/", DSN: "memory://root?dirs=/data&files=/etc/passwd"})
	assertStatus(t, res, http.StatusCreated)

	res = doRequest(t, h, http.MethodPost, "/mounts", CreateMountRequest{Target: "/data", DSN: "memory://data?files=/hello.txt"})
	assertStatus(t, res, http.StatusCreated)

	created := decodeResponse[CreateMountResponse](t, res)
	if e, g := "memory://data", created.Mount.Backend; e != g {
		t.Errorf("created.Mount.Backend: expected '%s', got '%s'", e, g)
	}

	res = doRequest(t, h, http.MethodGet, "/resolve?path="+url.QueryEscape("/data/hello.txt"), nil)
	assertStatus(t, res, http.StatusOK)

	resolved := decodeResponse[ResolveResponse](t, res)
	if e, g := "memory://data", resolved.Backend; e != g {
		t.Errorf("resolved.Backend: expected '%s', got '%s'", e, g)
	}
	if e, g := "/hello.txt", resolved.Suffix; e != g {
		t.Errorf("resolved.Suffix: expected '%s', got '%s'", e, g)
	}

	res = doRequest(t, h, http.MethodGet, "/stat?path="+url.QueryEscape("/data/hello.txt"), nil)
	assertStatus(t, res, http.StatusOK)

	stat := decodeResponse[StatResponse](t, res)
	if stat.IsDir {
		t.Errorf("expected '/data/hello.txt' not to be a directory")
	}

	res = doRequest(t, h, http.MethodGet, "/mounts", nil)
	assertStatus(t, res, http.StatusOK)

	list := decodeResponse[ListMountsResponse](t, res)
	if e, g := 2, list.Total; e != g {
		t.Errorf("list.Total: expected %d, got %d\n%s", e, g, spew.Sdump(list))
	}
	if e, g := mount.DefaultCapacity, list.Capacity; e != g {
		t.Errorf("list.Capacity: expected %d, got %d", e, g)
	}

	res = doRequest(t, h, http.MethodDelete, "/mounts?target="+url.QueryEscape("/data"), nil)
	assertStatus(t, res, http.StatusNoContent)

	res = doRequest(t, h, http.MethodGet, "/resolve?path="+url.QueryEscape("/data/hello.txt"), nil)
	assertStatus(t, res, http.StatusOK)

	resolved = decodeResponse[ResolveResponse](t, res)
	if e, g := "memory://root", resolved.Backend; e != g {
		t.Errorf("resolved.Backend: expected '%s', got '%s'", e, g)
	}
	if e, g := "/data/hello.txt", resolved.Suffix; e != g {
		t.Errorf("resolved.Suffix: expected '%s', got '%s'", e, g)
	}

	res = doRequest(t, h, http.MethodGet, "/stat?path="+url.QueryEscape("/data/hello.txt"), nil)
	assertStatus(t, res, http.StatusNotFound)
}

func TestHandlerErrors(t *testing.T) {
	h, hooks := newTestHandler()
	defer hooks.Run()

	res := doRequest(t, h, http.MethodPost, "/mounts", CreateMountRequest{Target: "/", DSN: "memory://root?files=/etc/passwd"})
	assertStatus(t, res, http.StatusCreated)

	type testCase struct {
		Name     string
		Method   string
		Target   string
		Body     any
		Expected int
	}

	testCases := []testCase{
		{Name: "duplicate mount", Method: http.MethodPost, Target: "/mounts", Body: CreateMountRequest{Target: "/", DSN: "memory://other"}, Expected: http.StatusConflict},
		{Name: "mount on file", Method: http.MethodPost, Target: "/mounts", Body: CreateMountRequest{Target: "/etc/passwd", DSN: "memory://other"}, Expected: http.StatusUnprocessableEntity},
		{Name: "missing mount point", Method: http.MethodPost, Target: "/mounts", Body: CreateMountRequest{Target: "/missing", DSN: "memory://other"}, Expected: http.StatusNotFound},
		{Name: "unknown scheme", Method: http.MethodPost, Target: "/mounts", Body: CreateMountRequest{Target: "/etc", DSN: "unknown://other"}, Expected: http.StatusBadRequest},
		{Name: "missing dsn", Method: http.MethodPost, Target: "/mounts", Body: CreateMountRequest{Target: "/etc"}, Expected: http.StatusBadRequest},
		{Name: "invalid body", Method: http.MethodPost, Target: "/mounts", Body: "not an object", Expected: http.StatusBadRequest},
		{Name: "unmount non mount point", Method: http.MethodDelete, Target: "/mounts?target=/etc", Expected: http.StatusNotFound},
		{Name: "unmount without target", Method: http.MethodDelete, Target: "/mounts", Expected: http.StatusBadRequest},
		{Name: "resolve without path", Method: http.MethodGet, Target: "/resolve", Expected: http.StatusBadRequest},
		{Name: "stat missing file", Method: http.MethodGet, Target: "/stat?path=/etc/shadow", Expected: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			res := doRequest(t, h, tc.Method, tc.Target, tc.Body)
			assertStatus(t, res, tc.Expected)
		})
	}
}

func TestHandlerExhausted(t *testing.T) {
	hooks := atexit.New()
	defer hooks.Run()

	registry := mount.New(mount.WithExitRegistrar(hooks), mount.WithCapacity(1))
	h := NewHandler(registry, backend.New)

	res := doRequest(t, h, http.MethodPost, "/mounts", CreateMountRequest{Target: "/a", DSN: "memory://a"})
	assertStatus(t, res, http.StatusCreated)

	res = doRequest(t, h, http.MethodPost, "/mounts", CreateMountRequest{Target: "/b", DSN: "memory://b"})
	assertStatus(t, res, http.StatusInsufficientStorage)
}
