package version

import "testing"

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestVersionOverride(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	// simulates build-time ldflags
	Version = "1.2.3"
	if Version != "1.2.3" {
		t.Errorf("Version = %q", Version)
	}
}
