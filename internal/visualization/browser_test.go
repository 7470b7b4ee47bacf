package visualization

import (
	"runtime"
	"testing"
)

func TestOpenBrowser_SupportedPlatform(t *testing.T) {
	switch runtime.GOOS {
	case "linux", "darwin", "windows":
		// Covered platforms; launching a browser is not exercised here.
	default:
		if err := OpenBrowser("http://localhost"); err == nil {
			t.Errorf("expected error on unsupported platform %s", runtime.GOOS)
		}
	}
}
