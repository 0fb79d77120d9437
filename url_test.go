package datasync

import "testing"

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, relative, want string
	}{
		{"https://api.example.com/items", "", "https://api.example.com/items"},
		{"https://api.example.com/items", "5", "https://api.example.com/items/5"},
		{"https://api.example.com/items", "a/b", "https://api.example.com/items/a/b"},
		// No normalization.
		{"https://api.example.com/items/", "/x", "https://api.example.com/items///x"},
		{"", "x", "/x"},
	}

	for _, tt := range tests {
		if got := ResolveURL(tt.base, tt.relative); got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.relative, got, tt.want)
		}
	}
}
