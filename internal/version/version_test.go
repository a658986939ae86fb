package version

import "testing"

func TestString(t *testing.T) {
	origVersion, origCommit, origBuildTime := Version, Commit, BuildTime
	defer func() {
		Version, Commit, BuildTime = origVersion, origCommit, origBuildTime
	}()

	Version = "1.2.3"
	Commit = "abc1234"
	BuildTime = "2026-08-01T10:00:00Z"

	if got, want := String(), "1.2.3 (abc1234) built 2026-08-01T10:00:00Z"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
