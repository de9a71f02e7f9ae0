package scraper

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"$1,250", 1250, true},
		{"$99.99", 99.99, true},
		{"  $450 ", 450, true},
		{"100", 100, true},
		{"0", 0, true},
		{"", 0, false},
		{"Free", 0, false},
		{"$", 0, false},
		{"-5", 0, false},
	}

	for _, tt := range tests {
		got := ParsePrice(tt.raw)
		if tt.ok {
			if got == nil {
				t.Errorf("ParsePrice(%q) = nil, want %v", tt.raw, tt.want)
			} else if *got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.raw, *got, tt.want)
			}
		} else if got != nil {
			t.Errorf("ParsePrice(%q) = %v, want nil", tt.raw, *got)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  PS5  console ", "PS5 console"},
		{"one\n\ttwo   three", "one two three"},
		{"", ""},
		{"   ", ""},
		{"already clean", "already clean"},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://sfbay.craigslist.org/search/sss", "/elc/d/ps5/7700000001.html", "https://sfbay.craigslist.org/elc/d/ps5/7700000001.html"},
		{"https://offerup.com/search", "https://offerup.com/item/detail/abc123", "https://offerup.com/item/detail/abc123"},
		{"https://example.com/a/b", "c", "https://example.com/a/c"},
	}

	for _, tt := range tests {
		if got := AbsoluteURL(tt.base, tt.href); got != tt.want {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}
