package update

import "runtime"

// DefaultUpdaterName is the base name of the helper binary shipped next to
// the launcher.
const DefaultUpdaterName = "lodestone_updater"

// UpdaterBinaryName returns the platform-specific file name of the updater
// binary, e.g. "lodestone_updater" or "lodestone_updater.exe".
func UpdaterBinaryName(base string) string {
	if base == "" {
		base = DefaultUpdaterName
	}
	return updaterBinaryNameFor(base, runtime.GOOS)
}

func updaterBinaryNameFor(base, goos string) string {
	if goos == "windows" {
		return base + ".exe"
	}
	return base
}
