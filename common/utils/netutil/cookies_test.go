package netutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mocapkit/amassget/common/utils/netutil"
)

func writeCookieFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCookieFile(t *testing.T) {
	content := "# Netscape HTTP Cookie File\n" +
		"\n" +
		"x\tTRUE\t/\tFALSE\t0\tSESSION\tabc123\n" +
		"FOO=bar\n" +
		"# commented=out\n"
	cookies, err := netutil.ParseCookieFile(writeCookieFile(t, content))
	if err != nil {
		t.Fatal(err)
	}
	if len(cookies) != 2 {
		t.Fatalf("got %d cookies; want 2", len(cookies))
	}
	if cookies[0].Name != "SESSION" || cookies[0].Value != "abc123" {
		t.Errorf("cookie 0 = %s=%s; want SESSION=abc123", cookies[0].Name, cookies[0].Value)
	}
	if cookies[1].Name != "FOO" || cookies[1].Value != "bar" {
		t.Errorf("cookie 1 = %s=%s; want FOO=bar", cookies[1].Name, cookies[1].Value)
	}
}

func TestParseCookieFileOverride(t *testing.T) {
	content := "FOO=first\n" +
		"x\tTRUE\t/\tFALSE\t0\tFOO\tsecond\n"
	cookies, err := netutil.ParseCookieFile(writeCookieFile(t, content))
	if err != nil {
		t.Fatal(err)
	}
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies; want 1", len(cookies))
	}
	if cookies[0].Value != "second" {
		t.Errorf("later entry should win, got %q", cookies[0].Value)
	}
}

func TestParseCookieFileValueWithEquals(t *testing.T) {
	cookies, err := netutil.ParseCookieFile(writeCookieFile(t, "TOKEN=a=b=c\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cookies) != 1 || cookies[0].Value != "a=b=c" {
		t.Fatalf("got %v; want TOKEN=a=b=c", cookies)
	}
}

func TestParseCookieFileEmpty(t *testing.T) {
	cookies, err := netutil.ParseCookieFile(writeCookieFile(t, "# only comments\n\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cookies) != 0 {
		t.Fatalf("got %d cookies; want 0", len(cookies))
	}
}

func TestParseCookieFileMissing(t *testing.T) {
	_, err := netutil.ParseCookieFile(filepath.Join(t.TempDir(), "nope.txt"))
	if !os.IsNotExist(err) {
		t.Fatalf("got %v; want not-exist error", err)
	}
}
