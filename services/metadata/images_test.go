package metadata

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]string{
		"":      "en-US",
		"en":    "en-US",
		"en_US": "en-US",
		"pt-br": "pt-BR",
		"fr-FR": "fr-FR",
		"es":    "es-US",
		"@@":    "en-US",
	}
	for input, expect := range tests {
		if got := NormalizeLanguage(input); got != expect {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", input, got, expect)
		}
	}
}

func TestBuildImageURL(t *testing.T) {
	tests := []struct {
		name   string
		build  func(string, string) string
		path   string
		size   string
		expect string
	}{
		{"poster", BuildImageURL, "/abc.jpg", "w342", "https://image.tmdb.org/t/p/w342/abc.jpg"},
		{"poster default", BuildImageURL, "/abc.jpg", "", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"poster unknown size", BuildImageURL, "/abc.jpg", "w1280", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"poster missing", BuildImageURL, "", "w342", PlaceholderImageURL},
		{"backdrop", BuildBackdropURL, "/bd.jpg", "", "https://image.tmdb.org/t/p/w1280/bd.jpg"},
		{"backdrop original", BuildBackdropURL, "/bd.jpg", "original", "https://image.tmdb.org/t/p/original/bd.jpg"},
		{"backdrop missing", BuildBackdropURL, "", "", PlaceholderImageURL},
		{"logo", BuildLogoURL, "/logo.png", "", "https://image.tmdb.org/t/p/w300/logo.png"},
		{"logo missing", BuildLogoURL, "", "w92", PlaceholderImageURL},
		{"profile", BuildProfileURL, "/p.jpg", "h632", "https://image.tmdb.org/t/p/h632/p.jpg"},
		{"profile default", BuildProfileURL, "/p.jpg", "w500", "https://image.tmdb.org/t/p/w185/p.jpg"},
		// Paths are used verbatim.
		{"path verbatim", BuildImageURL, "no-slash.jpg", "w92", "https://image.tmdb.org/t/p/w92no-slash.jpg"},
	}
	for _, tc := range tests {
		if got := tc.build(tc.path, tc.size); got != tc.expect {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.expect)
		}
	}
}

func TestImageCDNCustomBase(t *testing.T) {
	cdn := ImageCDN{BaseURL: "https://cdn.example.com/t/p/"}
	if got := cdn.Poster("/x.jpg", "w92"); got != "https://cdn.example.com/t/p/w92/x.jpg" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := (ImageCDN{}).Logo("/x.png", ""); got != "https://image.tmdb.org/t/p/w300/x.png" {
		t.Fatalf("empty base should fall back to the TMDB CDN, got %q", got)
	}
}

func TestTrendingEndpoint(t *testing.T) {
	if got := TrendingEndpoint(TrendingAll, WindowWeek); got != "/trending/all/week" {
		t.Fatalf("unexpected endpoint %q", got)
	}
	if got := TrendingEndpoint(TrendingPerson, ParseWindow("bogus")); got != "/trending/person/day" {
		t.Fatalf("unexpected endpoint %q", got)
	}
}

func TestEndpointGroup(t *testing.T) {
	if got := endpointGroup("/movie/603/credits"); got != "/movie/{id}/credits" {
		t.Fatalf("unexpected group %q", got)
	}
	if got := endpointGroup("/trending/all/day"); got != "/trending/all/day" {
		t.Fatalf("unexpected group %q", got)
	}
}
