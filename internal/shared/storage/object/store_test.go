package object

import "testing"

func TestPublicURLAndKeyRoundTrip(t *testing.T) {
	t.Parallel()

	keys := []string{
		"original-uploads/abc123/1700000000000_original.png",
		"enhanced-uploads/abc123/1700000000000_enhanced.png",
	}
	for _, key := range keys {
		url := PublicURL("http://localhost:8080", key)
		if got := KeyFromURL(url); got != key {
			t.Fatalf("KeyFromURL(PublicURL(%q)) = %q", key, got)
		}
	}
}

func TestPublicURLTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	got := PublicURL("http://localhost:8080/", "a/b.png")
	want := "http://localhost:8080/o/a%2Fb.png?alt=media"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestKeyFromURLUnresolvable(t *testing.T) {
	t.Parallel()

	tests := []string{
		"http://localhost:8080/files/a.png",
		"http://localhost:8080/o/no-query-delimiter.png",
		"not a url at all",
		"",
	}
	for _, raw := range tests {
		if got := KeyFromURL(raw); got != "" {
			t.Fatalf("KeyFromURL(%q) = %q, want empty", raw, got)
		}
	}
}
