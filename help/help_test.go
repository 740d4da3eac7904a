package help

import "testing"

func TestGetHelp(t *testing.T) {
	h, err := GetHelp()
	if err != nil {
		t.Fatalf("GetHelp: %v", err)
	}
	if len(h.LutFormats) != 3 {
		t.Fatalf("got %d LUT formats, want 3", len(h.LutFormats))
	}

	byName := make(map[string]LutFormat)
	for _, f := range h.LutFormats {
		byName[f.Name] = f
	}
	if f, ok := byName["spi"]; !ok || f.Extension != ".spi1d" || f.Dimensions != 1 {
		t.Errorf("spi entry = %+v", f)
	}
	if f, ok := byName["cube"]; !ok || f.Extension != ".cube" || f.Dimensions != 3 {
		t.Errorf("cube entry = %+v", f)
	}
	if f := byName["cube"]; f.Domain == nil || f.Domain.Min != 0 || f.Domain.Max != 1 {
		t.Errorf("cube domain = %+v", f.Domain)
	}

	if len(h.ImageFormats) == 0 {
		t.Error("no image formats listed")
	}

	// Cached on second call.
	again, err := GetHelp()
	if err != nil {
		t.Fatal(err)
	}
	if len(again.LutFormats) != len(h.LutFormats) {
		t.Error("cached help differs")
	}
}
