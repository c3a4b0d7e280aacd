package tui

import "testing"

func TestThemeByKey(t *testing.T) {
	th, ok := ThemeByKey("dracula")
	if !ok {
		t.Fatal("dracula theme missing")
	}
	if th.Name != "Dracula" {
		t.Errorf("Name = %q", th.Name)
	}

	if _, ok := ThemeByKey("vaporwave"); ok {
		t.Error("unknown key should not resolve")
	}
}

func TestThemeKeys_AllResolve(t *testing.T) {
	if len(ThemeKeys) != 6 {
		t.Fatalf("got %d theme keys, want 6", len(ThemeKeys))
	}
	for _, key := range ThemeKeys {
		th, ok := ThemeByKey(key)
		if !ok {
			t.Errorf("key %q has no theme", key)
			continue
		}
		if th.Name == "" || th.Primary == "" || th.Error == "" {
			t.Errorf("theme %q is missing colors", key)
		}
	}
}

func TestDefaultTheme(t *testing.T) {
	if DefaultTheme().Name != "Ocean" {
		t.Errorf("default theme = %q, want Ocean", DefaultTheme().Name)
	}
}

func TestHueToRGB_Endpoints(t *testing.T) {
	r, g, b := hueToRGB(0)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("hue 0 = (%d,%d,%d), want red", r, g, b)
	}
	r, g, b = hueToRGB(1.0 / 3.0)
	if g != 255 {
		t.Errorf("hue 1/3 = (%d,%d,%d), want green dominant", r, g, b)
	}
}
