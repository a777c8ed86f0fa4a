package convert

import (
	"testing"

	"github.com/ajroetker/go-yuv/hwy"
)

func TestTargetIsBoundOnce(t *testing.T) {
	d := target()
	if d.Lanes() != hwy.CurrentTarget().Lanes() {
		t.Errorf("bound %d lanes, current target has %d", d.Lanes(), hwy.CurrentTarget().Lanes())
	}
	for range 3 {
		if target() != d {
			t.Fatal("target changed between calls")
		}
	}
}
