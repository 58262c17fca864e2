package daemon

import "pitopd/internal/protocol"

// The daemon itself is the responder's callback client. Each handler
// delegates to the device backend and, for state changes, broadcasts the new
// state so subscribers stay in sync with request-driven mutations.

func (d *Daemon) OnGetDeviceID() (string, error) {
	return d.device.ID(), nil
}

func (d *Daemon) OnGetBrightness() (int, error) {
	return d.device.Brightness()
}

func (d *Daemon) OnSetBrightness(brightness int) error {
	if err := d.device.SetBrightness(brightness); err != nil {
		return err
	}
	d.publisher.PublishBrightnessChanged(brightness)
	return nil
}

func (d *Daemon) OnIncrementBrightness() error {
	level, err := d.device.IncrementBrightness()
	if err != nil {
		return err
	}
	d.publisher.PublishBrightnessChanged(level)
	return nil
}

func (d *Daemon) OnDecrementBrightness() error {
	level, err := d.device.DecrementBrightness()
	if err != nil {
		return err
	}
	d.publisher.PublishBrightnessChanged(level)
	return nil
}

func (d *Daemon) OnBlankScreen() error {
	if err := d.device.BlankScreen(); err != nil {
		return err
	}
	d.publisher.PublishScreenBlanked()
	return nil
}

func (d *Daemon) OnUnblankScreen() error {
	if err := d.device.UnblankScreen(); err != nil {
		return err
	}
	d.publisher.PublishScreenUnblanked()
	return nil
}

func (d *Daemon) OnGetBatteryState() (protocol.BatteryState, error) {
	return d.device.BatteryState()
}

func (d *Daemon) OnGetPeripheralEnabled(peripheralID int) (bool, error) {
	return d.device.PeripheralEnabled(peripheralID)
}

func (d *Daemon) OnGetScreenBlankingTimeout() (int, error) {
	return d.device.ScreenBlankingTimeout()
}

func (d *Daemon) OnSetScreenBlankingTimeout(seconds int) error {
	return d.device.SetScreenBlankingTimeout(seconds)
}
