package pkgrouter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNormalizeCID(t *testing.T) {
	if got := normalizeCID("  abc  "); got != "abc" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := normalizeCID("\n"); got != "" {
		t.Fatalf("expected empty for newline, got %q", got)
	}
	long := strings.Repeat("a", 200)
	if got := normalizeCID(long); len(got) != 128 {
		t.Fatalf("expected length 128, got %d", len(got))
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "secret")
	headers.Set("X-Api-Key", "key")
	headers.Set("X-Trace", "ok")

	masked := maskHeaders(headers)
	if got := masked.Get("Authorization"); got != "***" {
		t.Fatalf("expected masked authorization, got %q", got)
	}
	if got := masked.Get("X-Api-Key"); got != "***" {
		t.Fatalf("expected masked api key, got %q", got)
	}
	if got := masked.Get("X-Trace"); got != "ok" {
		t.Fatalf("expected X-Trace to stay, got %q", got)
	}
	if got := headers.Get("Authorization"); got != "secret" {
		t.Fatalf("expected original headers unchanged, got %q", got)
	}
}

func TestStatusRecorderKeepsFirstStatus(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}

	if _, err := rec.Write([]byte("hello")); err != nil {
		t.Fatalf("Write() err = %v", err)
	}
	rec.WriteHeader(http.StatusTeapot)

	if rec.status != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.status, http.StatusOK)
	}
	if rec.bytes != 5 {
		t.Fatalf("bytes = %d, want 5", rec.bytes)
	}
}

func TestInternalFrames(t *testing.T) {
	stack := "goroutine 1 [running]:\n" +
		"main.main()\n" +
		"\t/src/xrpwhale/internal/whale/feed/consumer.go:120 +0x1d\n" +
		"\t/usr/local/go/src/runtime/proc.go:272 +0x28\n"

	got := internalFrames(stack)
	if len(got) != 1 || got[0] != "internal/whale/feed/consumer.go:120" {
		t.Fatalf("internalFrames() = %#v", got)
	}
}

func TestMatchedRoutePath(t *testing.T) {
	var got string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = matchedRoutePath(r)
	}), withRoute("/views"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/views?min_amount=5", nil))
	if got != "/views" {
		t.Fatalf("matchedRoutePath() = %q, want /views", got)
	}

	if got := matchedRoutePath(httptest.NewRequest(http.MethodGet, "/unknown", nil)); got != "/unknown" {
		t.Fatalf("matchedRoutePath() = %q, want /unknown", got)
	}
}
