package responder

import "pitopd/internal/protocol"

// CallbackClient is the contract the daemon core provides for performing
// actual device actions. Each method is synchronous; a returned error (or a
// panic) is reported to the client as a generic server error.
type CallbackClient interface {
	// OnGetDeviceID returns the identifier of the attached device.
	OnGetDeviceID() (string, error)

	// OnGetBrightness returns the current screen backlight level.
	OnGetBrightness() (int, error)

	// OnSetBrightness applies an absolute backlight level.
	OnSetBrightness(brightness int) error

	// OnIncrementBrightness raises the backlight by one step.
	OnIncrementBrightness() error

	// OnDecrementBrightness lowers the backlight by one step.
	OnDecrementBrightness() error

	// OnBlankScreen turns the display off.
	OnBlankScreen() error

	// OnUnblankScreen turns the display back on.
	OnUnblankScreen() error

	// OnGetBatteryState returns the current battery snapshot.
	OnGetBatteryState() (protocol.BatteryState, error)

	// OnGetPeripheralEnabled reports whether the given peripheral id is
	// enabled.
	OnGetPeripheralEnabled(peripheralID int) (bool, error)

	// OnGetScreenBlankingTimeout returns the idle timeout in seconds, zero
	// meaning never.
	OnGetScreenBlankingTimeout() (int, error)

	// OnSetScreenBlankingTimeout applies a new idle timeout in seconds.
	OnSetScreenBlankingTimeout(seconds int) error
}
