package internal

import (
	"testing"

	"github.com/kcmvp/archunit"
)

func TestArchitecture(t *testing.T) {
	protocol := archunit.Packages("protocol", []string{".../internal/hue/...", ".../internal/throttle/..."})
	frontends := archunit.Packages("frontends", []string{".../internal/ui/...", ".../internal/app/..."})

	// The bridge session and the scheduler stay usable without a UI.
	if err := protocol.ShouldNotReferLayers(frontends); err != nil {
		t.Errorf("Architecture violation: protocol packages depend on frontends: %v", err)
	}

	support := archunit.Packages("support", []string{".../internal/config/...", ".../internal/logging/...", ".../internal/prefs/..."})
	if err := support.ShouldNotReferLayers(frontends); err != nil {
		t.Errorf("Architecture violation: support packages depend on frontends: %v", err)
	}
}

func TestSessionPackagePresent(t *testing.T) {
	hue := archunit.Packages("hue", []string{".../internal/hue"})
	if len(hue.Packages()) == 0 {
		t.Error("No hue package found in internal")
	}
}
