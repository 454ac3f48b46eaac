package vpath

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCleanerNormalize(t *testing.T) {
	type testCase struct {
		Input    string
		Expected string
	}

	testCases := []testCase{
		{Input: "/", Expected: "/"},
		{Input: "/a/b/", Expected: "/a/b"},
		{Input: "//a//b", Expected: "/a/b"},
		{Input: "/a/./b/../c", Expected: "/a/c"},
		{Input: "/../..", Expected: "/"},
		{Input: "a/b", Expected: "/a/b"},
		{Input: ".", Expected: "/"},
	}

	cleaner := NewCleaner()

	for _, tc := range testCases {
		normalized, err := cleaner.Normalize(tc.Input)
		if err != nil {
			t.Fatalf("%s: %+v", tc.Input, errors.WithStack(err))
		}

		if e, g := tc.Expected, normalized; e != g {
			t.Errorf("%s: expected '%v', got '%v'", tc.Input, e, g)
		}
	}
}

func TestCleanerWorkdir(t *testing.T) {
	cleaner := NewCleaner(WithWorkdir(func() string { return "/home/user" }))

	normalized, err := cleaner.Normalize("../other/./file.txt")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "/home/other/file.txt", normalized; e != g {
		t.Errorf("expected '%v', got '%v'", e, g)
	}
}

func TestCleanerInvalid(t *testing.T) {
	cleaner := NewCleaner()

	invalid := []string{
		"",
		"/a\x00b",
		"/" + strings.Repeat("a", PathMax),
	}

	for _, p := range invalid {
		if _, err := cleaner.Normalize(p); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("%q: expected ErrInvalidPath, got '%v'", p, err)
		}
	}
}

func TestCleanerSymlinkResolver(t *testing.T) {
	cleaner := NewCleaner(WithSymlinkResolver(func(p string) (string, error) {
		if strings.HasPrefix(p, "/link") {
			return "/target" + strings.TrimPrefix(p, "/link"), nil
		}
		return p, nil
	}))

	normalized, err := cleaner.Normalize("/link/sub/")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "/target/sub", normalized; e != g {
		t.Errorf("expected '%v', got '%v'", e, g)
	}

	failing := NewCleaner(WithSymlinkResolver(func(p string) (string, error) {
		return "", errors.New("loop")
	}))

	if _, err := failing.Normalize("/a"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got '%v'", err)
	}
}
