package version

import "testing"

func TestStringIncludesBuildInfo(t *testing.T) {
	Version, Commit, BuildDate = "1.2.3", "abc123", "2026-01-01"
	t.Cleanup(func() { Version, Commit, BuildDate = "dev", "unknown", "unknown" })

	want := "version: 1.2.3\ncommit: abc123\nbuilt: 2026-01-01"
	if got := String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
