package util

import "testing"

func TestIsYouTubeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"full watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"http scheme", "http://youtube.com/watch?v=V5YNMd5N5BY", true},
		{"no scheme", "www.youtube.com/watch?v=abc", true},
		{"bare host", "youtube.com/watch?v=abc", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", true},
		{"bare short link", "youtu.be/dQw4w9WgXcQ", true},
		{"nocookie embed", "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", true},
		{"shorts path", "https://youtube.com/shorts/abc123", true},
		{"uppercase scheme and host", "HTTPS://WWW.YOUTUBE.COM/WATCH?V=ABC", true},

		{"empty", "", false},
		{"not a url", "not a url", false},
		{"other domain", "https://www.invalid-url.com/watch?v=12345", false},
		{"vimeo", "https://vimeo.com/123456", false},
		{"no path", "https://www.youtube.com", false},
		{"empty path", "youtube.com/", false},
		{"wrong tld", "https://youtube.org/watch?v=abc", false},
		{"lookalike host", "https://myyoutube.com/watch?v=abc", false},
		{"subdomain of other domain", "https://youtube.com.evil.example/watch", false},
		{"leading whitespace", " youtube.com/watch?v=abc", false},
		{"ftp scheme", "ftp://youtube.com/watch?v=abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsYouTubeURL(tt.raw); got != tt.want {
				t.Errorf("IsYouTubeURL(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://youtu.be/abc"); err != nil {
		t.Errorf("ValidateURL(valid) = %v, want nil", err)
	}
	err := ValidateURL("https://example.com/video")
	if err == nil {
		t.Fatal("ValidateURL(invalid) = nil, want error")
	}
}
