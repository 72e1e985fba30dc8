package discovery

import "testing"

func TestIsVideoFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"movie.mp4", true},
		{"movie.MKV", true},
		{"movie.mov", true},
		{"readme.txt", false},
		{"movie", false},
	}
	for _, c := range cases {
		if got := IsVideoFile(c.path); got != c.want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestCheckVideoExtensions(t *testing.T) {
	if err := CheckVideoExtensions([]string{"a.mp4", "b.mkv"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckVideoExtensions([]string{"a.mp4", "b.txt"}); err == nil {
		t.Error("expected error for non-video extension")
	}
}
