package device

import (
	"fmt"
	"sync"

	"pitopd/internal/protocol"
)

// Brightness range of the pi-top hub backlight.
const (
	MinBrightness = 0
	MaxBrightness = 10
)

// Simulated is an in-memory device. All methods are safe for concurrent use.
type Simulated struct {
	mu sync.Mutex

	id              string
	brightness      int
	blanked         bool
	blankingTimeout int
	battery         protocol.BatteryState
	peripherals     map[int]bool
}

// NewSimulated returns a simulated device reporting the given identifier.
func NewSimulated(id string) *Simulated {
	return &Simulated{
		id:              id,
		brightness:      MaxBrightness / 2,
		blankingTimeout: 300,
		battery:         protocol.BatteryState{Charging: 0, Capacity: 100, TimeRemaining: 0, Wattage: 0},
		peripherals:     make(map[int]bool),
	}
}

// ID returns the device identifier.
func (d *Simulated) ID() string {
	return d.id
}

// Brightness returns the current backlight level.
func (d *Simulated) Brightness() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness, nil
}

// SetBrightness applies an absolute backlight level.
func (d *Simulated) SetBrightness(brightness int) error {
	if brightness < MinBrightness || brightness > MaxBrightness {
		return fmt.Errorf("brightness %d out of range %d-%d", brightness, MinBrightness, MaxBrightness)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.brightness = brightness
	return nil
}

// IncrementBrightness raises the backlight one step, clamping at the
// maximum, and returns the new level.
func (d *Simulated) IncrementBrightness() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.brightness < MaxBrightness {
		d.brightness++
	}
	return d.brightness, nil
}

// DecrementBrightness lowers the backlight one step, clamping at the
// minimum, and returns the new level.
func (d *Simulated) DecrementBrightness() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.brightness > MinBrightness {
		d.brightness--
	}
	return d.brightness, nil
}

// BlankScreen turns the display off. Blanking an already blanked screen is a
// no-op.
func (d *Simulated) BlankScreen() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blanked = true
	return nil
}

// UnblankScreen turns the display back on.
func (d *Simulated) UnblankScreen() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blanked = false
	return nil
}

// Blanked reports whether the display is currently off.
func (d *Simulated) Blanked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.blanked
}

// BatteryState returns the current battery snapshot.
func (d *Simulated) BatteryState() (protocol.BatteryState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.battery, nil
}

// SetBatteryState replaces the battery snapshot, simulating a sensor update.
func (d *Simulated) SetBatteryState(state protocol.BatteryState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.battery = state
}

// PeripheralEnabled reports whether the given peripheral id is enabled.
// Unknown ids are simply disabled.
func (d *Simulated) PeripheralEnabled(peripheralID int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.peripherals[peripheralID], nil
}

// SetPeripheral marks a peripheral id as enabled or disabled, simulating a
// connect or disconnect.
func (d *Simulated) SetPeripheral(peripheralID int, enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if enabled {
		d.peripherals[peripheralID] = true
		return
	}
	delete(d.peripherals, peripheralID)
}

// ScreenBlankingTimeout returns the idle timeout in seconds, zero meaning
// never.
func (d *Simulated) ScreenBlankingTimeout() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.blankingTimeout, nil
}

// SetScreenBlankingTimeout applies a new idle timeout in seconds.
func (d *Simulated) SetScreenBlankingTimeout(seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("screen blanking timeout %d must not be negative", seconds)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blankingTimeout = seconds
	return nil
}
