package envar

import "testing"

func TestEnabled(t *testing.T) {
	for value, want := range map[string]bool{
		"":      false,
		"0":     false,
		"false": false,
		"OFF":   false,
		"no":    false,
		"1":     true,
		"true":  true,
		"yes":   true,
	} {
		t.Setenv(SysEventsTrace, value)
		if got := Enabled(SysEventsTrace); got != want {
			t.Fatalf("%q: expected %v, got %v", value, want, got)
		}
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv(SysEventsConfig, "")
	if Getenv(SysEventsConfig, "a.toml") != "a.toml" {
		t.Fatal("expected default value")
	}
	t.Setenv(SysEventsConfig, "b.toml")
	if Getenv(SysEventsConfig, "a.toml") != "b.toml" {
		t.Fatal("expected env value")
	}
}
