package models

import "testing"

func TestParseQuality(t *testing.T) {
	tests := []struct {
		input    string
		expected Quality
	}{
		{"mp3", ".mp3"},
		{".mp3", ".mp3"},
		{"flac", ".flac"},
		{".FLAC", ".FLAC"},
		{"FLAC", ".FLAC"},
		{"  m4a ", ".m4a"},
		{"", DefaultQuality},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseQuality(tt.input)
			if result != tt.expected {
				t.Errorf("ParseQuality(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseQuality_SameSuffixWithAndWithoutDot(t *testing.T) {
	withDot := ParseQuality(".mp3")
	withoutDot := ParseQuality("mp3")
	if withDot != withoutDot {
		t.Fatalf("expected identical qualities, got %q and %q", withDot, withoutDot)
	}

	track := TrackEntry{Number: 3, DisplayName: "Title"}
	if track.Filename(withDot) != track.Filename(withoutDot) {
		t.Errorf("filenames differ: %q vs %q", track.Filename(withDot), track.Filename(withoutDot))
	}
	link := "https://downloads.example.com/album/03.wav"
	if withDot.Apply(link) != withoutDot.Apply(link) {
		t.Errorf("asset URLs differ: %q vs %q", withDot.Apply(link), withoutDot.Apply(link))
	}
}

func TestQuality_Apply(t *testing.T) {
	tests := []struct {
		name    string
		quality Quality
		link    string
		want    string
	}{
		{
			name:    "replaces mp3 with flac",
			quality: ".flac",
			link:    "https://downloads.example.com/soundtracks/album/01%20Intro.mp3",
			want:    "https://downloads.example.com/soundtracks/album/01%20Intro.flac",
		},
		{
			name:    "keeps same extension",
			quality: ".mp3",
			link:    "https://downloads.example.com/a/b.mp3",
			want:    "https://downloads.example.com/a/b.mp3",
		},
		{
			name:    "appends when last segment has no extension",
			quality: ".mp3",
			link:    "https://downloads.example.com/a/track",
			want:    "https://downloads.example.com/a/track.mp3",
		},
		{
			name:    "preserves query string",
			quality: ".flac",
			link:    "https://downloads.example.com/a/b.mp3?token=1.2",
			want:    "https://downloads.example.com/a/b.flac?token=1.2",
		},
		{
			name:    "only last dot is replaced",
			quality: ".ogg",
			link:    "/album/v1.2/track.name.mp3",
			want:    "/album/v1.2/track.name.ogg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quality.Apply(tt.link); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

func TestQuality_MatchesLink(t *testing.T) {
	tests := []struct {
		quality Quality
		link    string
		want    bool
	}{
		{".flac", "https://x.example.com/a/01.flac", true},
		{".flac", "https://x.example.com/a/01.FLAC", true},
		{".flac", "https://x.example.com/a/01.mp3", false},
		{".mp3", "https://x.example.com/a/01.mp3?dl=1", true},
		{".FLAC", "https://x.example.com/a/01.flac", true},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			if got := tt.quality.MatchesLink(tt.link); got != tt.want {
				t.Errorf("%q.MatchesLink(%q) = %v, want %v", tt.quality, tt.link, got, tt.want)
			}
		})
	}
}

func TestParseQuality_KeepsCaseInFilenamesAndLinks(t *testing.T) {
	q := ParseQuality("FLAC")

	track := TrackEntry{Number: 1, DisplayName: "Opening"}
	if got := track.Filename(q); got != "01 - Opening.FLAC" {
		t.Errorf("Filename() = %q, want %q", got, "01 - Opening.FLAC")
	}
	if got := q.Apply("https://downloads.example.com/a/01.mp3"); got != "https://downloads.example.com/a/01.FLAC" {
		t.Errorf("Apply() = %q", got)
	}
}
