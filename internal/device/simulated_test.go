package device_test

import (
	"testing"

	"pitopd/internal/device"
	"pitopd/internal/protocol"
)

func TestBrightnessClamping(t *testing.T) {
	d := device.NewSimulated("pi-top[4]")

	if err := d.SetBrightness(device.MaxBrightness); err != nil {
		t.Fatalf("SetBrightness(max): %v", err)
	}
	level, err := d.IncrementBrightness()
	if err != nil {
		t.Fatalf("IncrementBrightness: %v", err)
	}
	if level != device.MaxBrightness {
		t.Fatalf("brightness = %d, want clamp at %d", level, device.MaxBrightness)
	}

	if err := d.SetBrightness(device.MinBrightness); err != nil {
		t.Fatalf("SetBrightness(min): %v", err)
	}
	level, err = d.DecrementBrightness()
	if err != nil {
		t.Fatalf("DecrementBrightness: %v", err)
	}
	if level != device.MinBrightness {
		t.Fatalf("brightness = %d, want clamp at %d", level, device.MinBrightness)
	}
}

func TestSetBrightnessRejectsOutOfRange(t *testing.T) {
	d := device.NewSimulated("pi-top[4]")
	if err := d.SetBrightness(device.MaxBrightness + 1); err == nil {
		t.Fatal("expected error above range")
	}
	if err := d.SetBrightness(-1); err == nil {
		t.Fatal("expected error below range")
	}
}

func TestBlankUnblank(t *testing.T) {
	d := device.NewSimulated("pi-top[4]")
	if d.Blanked() {
		t.Fatal("screen should start unblanked")
	}
	if err := d.BlankScreen(); err != nil {
		t.Fatalf("BlankScreen: %v", err)
	}
	if !d.Blanked() {
		t.Fatal("screen should be blanked")
	}
	if err := d.UnblankScreen(); err != nil {
		t.Fatalf("UnblankScreen: %v", err)
	}
	if d.Blanked() {
		t.Fatal("screen should be unblanked")
	}
}

func TestPeripheralRegistry(t *testing.T) {
	d := device.NewSimulated("pi-top[4]")
	enabled, err := d.PeripheralEnabled(3)
	if err != nil {
		t.Fatalf("PeripheralEnabled: %v", err)
	}
	if enabled {
		t.Fatal("unknown peripheral should be disabled")
	}
	d.SetPeripheral(3, true)
	if enabled, _ = d.PeripheralEnabled(3); !enabled {
		t.Fatal("peripheral 3 should be enabled")
	}
	d.SetPeripheral(3, false)
	if enabled, _ = d.PeripheralEnabled(3); enabled {
		t.Fatal("peripheral 3 should be disabled again")
	}
}

func TestBatterySnapshot(t *testing.T) {
	d := device.NewSimulated("pi-top[4]")
	want := protocol.BatteryState{Charging: 1, Capacity: 55, TimeRemaining: 90, Wattage: 12}
	d.SetBatteryState(want)
	got, err := d.BatteryState()
	if err != nil {
		t.Fatalf("BatteryState: %v", err)
	}
	if got != want {
		t.Fatalf("BatteryState = %+v, want %+v", got, want)
	}
}

func TestScreenBlankingTimeout(t *testing.T) {
	d := device.NewSimulated("pi-top[4]")
	if err := d.SetScreenBlankingTimeout(-5); err == nil {
		t.Fatal("expected error for negative timeout")
	}
	if err := d.SetScreenBlankingTimeout(0); err != nil {
		t.Fatalf("SetScreenBlankingTimeout(0): %v", err)
	}
	timeout, err := d.ScreenBlankingTimeout()
	if err != nil {
		t.Fatalf("ScreenBlankingTimeout: %v", err)
	}
	if timeout != 0 {
		t.Fatalf("timeout = %d, want 0", timeout)
	}
}
