package testsupport

import (
	"testing"

	"ntfystep/internal/config"
)

// IsolateEnv points HOME at a fresh temp directory and blanks every variable
// the config loader reads, so a developer's shell cannot leak into a test.
// It returns the temporary home directory.
func IsolateEnv(t testing.TB) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NO_COLOR", "1")
	for _, name := range config.EnvNames() {
		t.Setenv(name, "")
	}
	return home
}
