package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Delimiter separates the id token and parameter tokens on the wire. It can
// never appear inside an encoded integer, which keeps concatenated parameters
// unambiguous.
const Delimiter = "|"

// ID identifies a message kind. The numbering is part of the wire contract
// and must not be reordered.
type ID int

// Client -> daemon requests.
const (
	ReqPing                     ID = 110
	ReqGetDeviceID              ID = 111
	ReqGetBrightness            ID = 112
	ReqSetBrightness            ID = 113
	ReqIncrementBrightness      ID = 114
	ReqDecrementBrightness      ID = 115
	ReqBlankScreen              ID = 116
	ReqUnblankScreen            ID = 117
	ReqGetBatteryState          ID = 118
	ReqGetPeripheralEnabled     ID = 119
	ReqGetScreenBlankingTimeout ID = 120
	ReqSetScreenBlankingTimeout ID = 121
)

// Daemon -> client responses.
const (
	RspErrServer      ID = 201
	RspErrMalformed   ID = 202
	RspErrUnsupported ID = 203

	RspPing                     ID = 210
	RspGetDeviceID              ID = 211
	RspGetBrightness            ID = 212
	RspSetBrightness            ID = 213
	RspIncrementBrightness      ID = 214
	RspDecrementBrightness      ID = 215
	RspBlankScreen              ID = 216
	RspUnblankScreen            ID = 217
	RspGetBatteryState          ID = 218
	RspGetPeripheralEnabled     ID = 219
	RspGetScreenBlankingTimeout ID = 220
	RspSetScreenBlankingTimeout ID = 221
)

// Daemon -> all subscribers broadcast notifications.
const (
	PubBrightnessChanged      ID = 300
	PubPeripheralConnected    ID = 301
	PubPeripheralDisconnected ID = 302
	PubUnsupportedHardware    ID = 303
	PubShutdownRequested      ID = 304
	PubRebootRequired         ID = 305
	PubBatteryStateChanged    ID = 306
	PubScreenBlanked          ID = 307
	PubScreenUnblanked        ID = 308
	PubLowBatteryWarning      ID = 309
	PubCriticalBatteryWarning ID = 310
	PubLidOpened              ID = 311
	PubLidClosed              ID = 312
	PubButtonUpPressed        ID = 313
	PubButtonUpReleased       ID = 314
	PubButtonDownPressed      ID = 315
	PubButtonDownReleased     ID = 316
	PubButtonSelectPressed    ID = 317
	PubButtonSelectReleased   ID = 318
	PubButtonCancelPressed    ID = 319
	PubButtonCancelReleased   ID = 320
	PubOLEDControlChanged     ID = 321
	PubOLEDSPIBusChanged      ID = 322
	PubReady                  ID = 323
)

var idNames = map[ID]string{
	ReqPing:                     "REQ_PING",
	ReqGetDeviceID:              "REQ_GET_DEVICE_ID",
	ReqGetBrightness:            "REQ_GET_BRIGHTNESS",
	ReqSetBrightness:            "REQ_SET_BRIGHTNESS",
	ReqIncrementBrightness:      "REQ_INCREMENT_BRIGHTNESS",
	ReqDecrementBrightness:      "REQ_DECREMENT_BRIGHTNESS",
	ReqBlankScreen:              "REQ_BLANK_SCREEN",
	ReqUnblankScreen:            "REQ_UNBLANK_SCREEN",
	ReqGetBatteryState:          "REQ_GET_BATTERY_STATE",
	ReqGetPeripheralEnabled:     "REQ_GET_PERIPHERAL_ENABLED",
	ReqGetScreenBlankingTimeout: "REQ_GET_SCREEN_BLANKING_TIMEOUT",
	ReqSetScreenBlankingTimeout: "REQ_SET_SCREEN_BLANKING_TIMEOUT",

	RspErrServer:      "RSP_ERR_SERVER",
	RspErrMalformed:   "RSP_ERR_MALFORMED",
	RspErrUnsupported: "RSP_ERR_UNSUPPORTED",

	RspPing:                     "RSP_PING",
	RspGetDeviceID:              "RSP_GET_DEVICE_ID",
	RspGetBrightness:            "RSP_GET_BRIGHTNESS",
	RspSetBrightness:            "RSP_SET_BRIGHTNESS",
	RspIncrementBrightness:      "RSP_INCREMENT_BRIGHTNESS",
	RspDecrementBrightness:      "RSP_DECREMENT_BRIGHTNESS",
	RspBlankScreen:              "RSP_BLANK_SCREEN",
	RspUnblankScreen:            "RSP_UNBLANK_SCREEN",
	RspGetBatteryState:          "RSP_GET_BATTERY_STATE",
	RspGetPeripheralEnabled:     "RSP_GET_PERIPHERAL_ENABLED",
	RspGetScreenBlankingTimeout: "RSP_GET_SCREEN_BLANKING_TIMEOUT",
	RspSetScreenBlankingTimeout: "RSP_SET_SCREEN_BLANKING_TIMEOUT",

	PubBrightnessChanged:      "PUB_BRIGHTNESS_CHANGED",
	PubPeripheralConnected:    "PUB_PERIPHERAL_CONNECTED",
	PubPeripheralDisconnected: "PUB_PERIPHERAL_DISCONNECTED",
	PubUnsupportedHardware:    "PUB_UNSUPPORTED_HARDWARE",
	PubShutdownRequested:      "PUB_SHUTDOWN_REQUESTED",
	PubRebootRequired:         "PUB_REBOOT_REQUIRED",
	PubBatteryStateChanged:    "PUB_BATTERY_STATE_CHANGED",
	PubScreenBlanked:          "PUB_SCREEN_BLANKED",
	PubScreenUnblanked:        "PUB_SCREEN_UNBLANKED",
	PubLowBatteryWarning:      "PUB_LOW_BATTERY_WARNING",
	PubCriticalBatteryWarning: "PUB_CRITICAL_BATTERY_WARNING",
	PubLidOpened:              "PUB_LID_OPENED",
	PubLidClosed:              "PUB_LID_CLOSED",
	PubButtonUpPressed:        "PUB_BUTTON_UP_PRESSED",
	PubButtonUpReleased:       "PUB_BUTTON_UP_RELEASED",
	PubButtonDownPressed:      "PUB_BUTTON_DOWN_PRESSED",
	PubButtonDownReleased:     "PUB_BUTTON_DOWN_RELEASED",
	PubButtonSelectPressed:    "PUB_BUTTON_SELECT_PRESSED",
	PubButtonSelectReleased:   "PUB_BUTTON_SELECT_RELEASED",
	PubButtonCancelPressed:    "PUB_BUTTON_CANCEL_PRESSED",
	PubButtonCancelReleased:   "PUB_BUTTON_CANCEL_RELEASED",
	PubOLEDControlChanged:     "PUB_OLED_CONTROL_CHANGED",
	PubOLEDSPIBusChanged:      "PUB_OLED_SPI_BUS_CHANGED",
	PubReady:                  "PUB_READY",
}

// Name returns the symbolic name for the id, or UNKNOWN(n) for ids outside
// the catalogue.
func (id ID) Name() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(id))
}

// Known reports whether the id belongs to the message catalogue.
func (id ID) Known() bool {
	_, ok := idNames[id]
	return ok
}

// ParamType describes the expected type of one parameter position. The
// current schema only carries integers and strings, but validation is written
// against this enum so new primitive types extend it without changing the
// count-then-type contract.
type ParamType int

const (
	TypeInt ParamType = iota
	TypeString
)

func (t ParamType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	default:
		return fmt.Sprintf("ParamType(%d)", int(t))
	}
}

// BatteryState is the four-value battery snapshot carried by
// REQ_GET_BATTERY_STATE responses and PUB_BATTERY_STATE_CHANGED broadcasts.
type BatteryState struct {
	Charging      int
	Capacity      int
	TimeRemaining int
	Wattage       int
}

// Message pairs a message id with its raw parameter tokens. Parameters stay
// as strings until validated; typed accessors coerce on read.
type Message struct {
	ID     ID
	Params []string
}

// New builds a message from an id and primitive parameter values. Passing a
// value of an unsupported type, or a string containing the delimiter, is a
// caller bug and panics.
func New(id ID, params ...any) Message {
	tokens := make([]string, len(params))
	for i, param := range params {
		switch v := param.(type) {
		case int:
			tokens[i] = strconv.Itoa(v)
		case string:
			if strings.Contains(v, Delimiter) {
				panic(fmt.Sprintf("protocol: parameter %d contains the delimiter %q", i, Delimiter))
			}
			tokens[i] = v
		default:
			panic(fmt.Sprintf("protocol: unsupported parameter type %T", param))
		}
	}
	return Message{ID: id, Params: tokens}
}

// ValidateParameters checks the message against a parameter schema: count
// first, then per-position coercion. A count mismatch is reported before any
// type is inspected.
func (m Message) ValidateParameters(expected []ParamType) error {
	if len(m.Params) != len(expected) {
		return &ValidationError{
			ID:     m.ID,
			Reason: fmt.Sprintf("expected %d parameters, got %d", len(expected), len(m.Params)),
		}
	}
	for i, paramType := range expected {
		switch paramType {
		case TypeInt:
			if _, err := strconv.Atoi(m.Params[i]); err != nil {
				return &ValidationError{
					ID:     m.ID,
					Reason: fmt.Sprintf("parameter %d: %q is not an integer", i, m.Params[i]),
				}
			}
		case TypeString:
			// Any token is a valid string.
		default:
			return &ValidationError{
				ID:     m.ID,
				Reason: fmt.Sprintf("parameter %d: unsupported schema type %v", i, paramType),
			}
		}
	}
	return nil
}

// Int returns parameter i coerced to an integer.
func (m Message) Int(i int) (int, error) {
	if i < 0 || i >= len(m.Params) {
		return 0, fmt.Errorf("parameter index %d out of range (message has %d)", i, len(m.Params))
	}
	value, err := strconv.Atoi(m.Params[i])
	if err != nil {
		return 0, fmt.Errorf("parameter %d: %q is not an integer", i, m.Params[i])
	}
	return value, nil
}

// String returns parameter i as a string.
func (m Message) String(i int) (string, error) {
	if i < 0 || i >= len(m.Params) {
		return "", fmt.Errorf("parameter index %d out of range (message has %d)", i, len(m.Params))
	}
	return m.Params[i], nil
}

// Describe renders the message for log lines. It never fails, even for ids
// outside the catalogue.
func (m Message) Describe() string {
	if len(m.Params) == 0 {
		return m.ID.Name() + " []"
	}
	return m.ID.Name() + " [" + strings.Join(m.Params, " ") + "]"
}
