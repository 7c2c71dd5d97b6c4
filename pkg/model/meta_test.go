package model

import (
	"reflect"
	"testing"
)

func TestCaptionCatalogHasIgnoresEmptyLists(t *testing.T) {
	c := CaptionCatalog{
		Manual:    map[string][]SubtitleTrack{"en": {}, "fr": {{Lang: "fr"}}},
		Automatic: nil,
	}
	if c.Has("en", SubSourceManual) {
		t.Errorf("empty track list must count as absent")
	}
	if !c.Has("fr", SubSourceManual) {
		t.Errorf("fr manual should be present")
	}
	if c.Has("fr", SubSourceAutomatic) {
		t.Errorf("nil automatic map must count as absent")
	}
	if got := c.Languages(SubSourceManual); !reflect.DeepEqual(got, []string{"fr"}) {
		t.Errorf("Languages(manual) = %v; want [fr]", got)
	}
}

func TestSubtitleType(t *testing.T) {
	if got := SubSourceManual.SubtitleType(); got != "manual" {
		t.Errorf("manual -> %q", got)
	}
	if got := SubSourceAutomatic.SubtitleType(); got != "auto-generated" {
		t.Errorf("automatic -> %q", got)
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputStructured, false},
		{"structured", OutputStructured, false},
		{"plainText", OutputPlainText, false},
		{"BOTH", OutputBoth, false},
		{"xml", "", true},
	}
	for _, tc := range tests {
		got, err := ParseOutputFormat(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseOutputFormat(%q) err = %v; wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseOutputFormat(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
	if !OutputBoth.WantsStructured() || !OutputBoth.WantsPlainText() {
		t.Errorf("both must want structured and plain text")
	}
	if OutputPlainText.WantsStructured() {
		t.Errorf("plainText must not want structured")
	}
}
