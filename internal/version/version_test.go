package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()

	if !strings.HasPrefix(info, "csim ") {
		t.Errorf("expected info to start with 'csim ', got %q", info)
	}
	for _, field := range []string{"Commit:", "Built:", "Go:", "OS/Arch:"} {
		if !strings.Contains(info, field) {
			t.Errorf("expected info to contain %q", field)
		}
	}
}

func TestShort(t *testing.T) {
	if Short() != Version {
		t.Errorf("expected Short() to return Version, got %q", Short())
	}
}
