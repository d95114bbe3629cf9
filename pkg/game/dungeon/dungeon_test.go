package dungeon

import "testing"

func TestDescribe_Rules(t *testing.T) {
	tests := []struct {
		depth               int
		up, shops, trapdoor bool
		teleport            bool
	}{
		{1, false, false, false, false},
		{2, true, true, false, false},
		{6, true, true, true, false},
		{16, true, true, true, true},
		{24, true, false, true, true},
		{25, true, false, false, true},
	}
	for _, tt := range tests {
		d := Describe(tt.depth, false, false)
		if d.NeedsUpStairs() != tt.up || d.ShopsAllowed() != tt.shops ||
			d.TrapdoorNiches() != tt.trapdoor || d.TeleportNiches() != tt.teleport {
			t.Errorf("depth %d: got up=%v shops=%v trapdoor=%v teleport=%v", tt.depth,
				d.NeedsUpStairs(), d.ShopsAllowed(), d.TrapdoorNiches(), d.TeleportNiches())
		}
	}
	if Describe(20, false, true).TeleportNiches() {
		t.Error("no-teleport level allows teleport niches")
	}
}

func TestBandOf(t *testing.T) {
	for depth, want := range map[int]Band{1: Upper, 4: Upper, 5: Middle, 12: Lower, 30: Deep} {
		if got := BandOf(depth); got != want {
			t.Errorf("BandOf(%d) = %v, want %v", depth, got, want)
		}
	}
}

func TestBandLabel_UntranslatedReturnsKey(t *testing.T) {
	for b, want := range map[Band]string{Upper: "BAND_UPPER", Middle: "BAND_MIDDLE", Lower: "BAND_LOWER", Deep: "BAND_DEEP"} {
		if got := BandLabel(b); got != want {
			t.Errorf("BandLabel(%v) = %q, want %q", b, got, want)
		}
	}
}
