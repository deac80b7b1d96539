package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "original-uploads/u/1.png", want: "original-uploads/u/1.png"},
		{name: "simple prefix", prefix: "root", key: "original-uploads/u/1.png", want: "root/original-uploads/u/1.png"},
		{name: "prefix trailing slash", prefix: "root/", key: "original-uploads/u/1.png", want: "root/original-uploads/u/1.png"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/original-uploads/u/1.png", want: "root/original-uploads/u/1.png"},
		{name: "nested prefix", prefix: "root/sub", key: "u/1.png", want: "root/sub/u/1.png"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "  /uploads/ ", want: "uploads"},
		{in: "a/b/", want: "a/b"},
	}
	for _, tt := range tests {
		if got := normalizePrefix(tt.in); got != tt.want {
			t.Fatalf("normalizePrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
