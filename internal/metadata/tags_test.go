package metadata

import "testing"

func TestIsKnownTag(t *testing.T) {
	tests := map[string]bool{
		"div":       true,
		"button":    true,
		"svg":       true,
		"my-widget": true,
		"blorp":     false,
		"Div":       false,
	}

	for tag, want := range tests {
		t.Run(tag, func(t *testing.T) {
			if got := IsKnownTag(tag); got != want {
				t.Errorf("IsKnownTag(%q) = %v, want %v", tag, got, want)
			}
		})
	}
}

func TestIsVoid(t *testing.T) {
	tests := map[string]bool{
		"img":   true,
		"br":    true,
		"input": true,
		"div":   false,
		"p":     false,
	}

	for tag, want := range tests {
		t.Run(tag, func(t *testing.T) {
			if got := IsVoid(tag); got != want {
				t.Errorf("IsVoid(%q) = %v, want %v", tag, got, want)
			}
		})
	}
}

func TestIsRawContent(t *testing.T) {
	if !IsRawContent("style") || !IsRawContent("script") {
		t.Error("style and script must be raw content tags")
	}
	if IsRawContent("div") {
		t.Error("div must not be a raw content tag")
	}
}
