package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-ledge/ledge/pkg/errors"
)

func TestClassifyBattery(t *testing.T) {
	tests := []struct {
		status string
		charge float64
		want   BatteryState
		known  bool
	}{
		{"Discharging", 0.05, BatteryCritical, true},
		{"Discharging", 0.09, BatteryCritical, true},
		{"Discharging", 0.15, BatteryWarn, true},
		{"Discharging", 0.24, BatteryWarn, true},
		{"Discharging", 0.5, BatteryNormal, true},
		{"Discharging", 1.0, BatteryNormal, true},
		{"Critical", 0.5, BatteryCritical, true},
		{"Full", 1.0, BatteryFull, true},
		{"Not charging", 0.9, BatteryFull, true},
		{"Charging", 0.96, BatteryFull, true},
		{"Charging", 0.5, BatteryCharging, true},
		{"Warn", 0.5, BatteryWarn, true},
		{"Unknown", 0.5, BatteryNormal, false},
		{"", 0.5, BatteryNormal, false},
	}
	for _, tt := range tests {
		got, known := classifyBattery(tt.status, tt.charge)
		if got != tt.want || known != tt.known {
			t.Errorf("classifyBattery(%q, %v) = %v, %v; want %v, %v",
				tt.status, tt.charge, got, known, tt.want, tt.known)
		}
	}
}

// fakeSupply writes a sysfs-shaped battery directory.
func fakeSupply(t *testing.T, full, now, status string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"energy_full": full,
		"energy_now":  now,
		"status":      status,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content+"\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func setSupply(t *testing.T, dir, file, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, file), []byte(content+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", file, err)
	}
}

func TestBatteryBuildMissingSupply(t *testing.T) {
	if _, err := NewBattery().Path("/nonexistent/supply").Build("battery"); err == nil {
		t.Error("Build with a missing supply dir should error")
	}
	if _, err := NewBattery().Path("relative/path").Build("battery"); err == nil {
		t.Error("Build with a relative path should error")
	}
}

func TestBatteryUpdateTracksCharge(t *testing.T) {
	dir := fakeSupply(t, "100000", "50000", "Discharging")
	b, err := NewBattery().Path(dir).DesiredHeight(20).Build("battery")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if !b.ShouldRedraw() {
		t.Error("first sample should schedule a draw")
	}
	if b.state != BatteryNormal {
		t.Errorf("state = %v, want %v", b.state, BatteryNormal)
	}

	// Drop to 5%: critical, recolored.
	setSupply(t, dir, "energy_now", "5000")
	if !b.ShouldRedraw() {
		t.Error("charge change should schedule a draw")
	}
	if b.state != BatteryCritical {
		t.Errorf("state = %v, want %v", b.state, BatteryCritical)
	}

	// Plugging in at 5% charges.
	setSupply(t, dir, "status", "Charging")
	b.ShouldRedraw()
	if b.state != BatteryCharging {
		t.Errorf("state = %v, want %v", b.state, BatteryCharging)
	}
}

func TestBatteryDisablesOnReadError(t *testing.T) {
	rec := &errorRecorder{}
	errors.SetHandler(rec)
	defer errors.SetHandler(nil)

	dir := fakeSupply(t, "100000", "50000", "Discharging")
	b, err := NewBattery().Path(dir).DesiredHeight(20).Build("battery")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	b.ShouldRedraw()

	if err := os.Remove(filepath.Join(dir, "energy_now")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if b.ShouldRedraw() {
		t.Error("failed sample should not draw")
	}
	if rec.count() != 1 {
		t.Fatalf("reported errors = %d, want 1", rec.count())
	}
	if got := rec.last(); got.Kind != errors.KindSource || got.Widget != "battery" {
		t.Errorf("reported %v [%v], want KindSource for battery", got.Kind, got.Widget)
	}

	// Restoring the file does not resurrect the widget.
	setSupply(t, dir, "energy_now", "50000")
	if b.ShouldRedraw() {
		t.Error("disabled battery should stay quiet")
	}
	if rec.count() != 1 {
		t.Errorf("disabled battery reported again: %d errors", rec.count())
	}
}

func TestBatteryGarbageValue(t *testing.T) {
	rec := &errorRecorder{}
	errors.SetHandler(rec)
	defer errors.SetHandler(nil)

	dir := fakeSupply(t, "100000", "not-a-number", "Discharging")
	b, err := NewBattery().Path(dir).DesiredHeight(20).Build("battery")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if b.ShouldRedraw() {
		t.Error("unparseable sample should not draw")
	}
	if rec.count() != 1 {
		t.Errorf("reported errors = %d, want 1", rec.count())
	}
}
