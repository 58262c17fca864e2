package responder

import "pitopd/internal/protocol"

// handler binds one request id to its parameter schema, the callback action,
// and the response id carrying the action's results. A lookup miss in the
// handlers table is the unsupported-request case.
type handler struct {
	params   []protocol.ParamType
	response protocol.ID
	invoke   func(cb CallbackClient, req protocol.Message) ([]any, error)
}

var handlers = map[protocol.ID]handler{
	protocol.ReqPing: {
		response: protocol.RspPing,
		invoke: func(CallbackClient, protocol.Message) ([]any, error) {
			return nil, nil
		},
	},
	protocol.ReqGetDeviceID: {
		response: protocol.RspGetDeviceID,
		invoke: func(cb CallbackClient, _ protocol.Message) ([]any, error) {
			id, err := cb.OnGetDeviceID()
			if err != nil {
				return nil, err
			}
			return []any{id}, nil
		},
	},
	protocol.ReqGetBrightness: {
		response: protocol.RspGetBrightness,
		invoke: func(cb CallbackClient, _ protocol.Message) ([]any, error) {
			brightness, err := cb.OnGetBrightness()
			if err != nil {
				return nil, err
			}
			return []any{brightness}, nil
		},
	},
	protocol.ReqSetBrightness: {
		params:   []protocol.ParamType{protocol.TypeInt},
		response: protocol.RspSetBrightness,
		invoke: func(cb CallbackClient, req protocol.Message) ([]any, error) {
			brightness, err := req.Int(0)
			if err != nil {
				return nil, err
			}
			return nil, cb.OnSetBrightness(brightness)
		},
	},
	protocol.ReqIncrementBrightness: {
		response: protocol.RspIncrementBrightness,
		invoke: func(cb CallbackClient, _ protocol.Message) ([]any, error) {
			return nil, cb.OnIncrementBrightness()
		},
	},
	protocol.ReqDecrementBrightness: {
		response: protocol.RspDecrementBrightness,
		invoke: func(cb CallbackClient, _ protocol.Message) ([]any, error) {
			return nil, cb.OnDecrementBrightness()
		},
	},
	protocol.ReqBlankScreen: {
		response: protocol.RspBlankScreen,
		invoke: func(cb CallbackClient, _ protocol.Message) ([]any, error) {
			return nil, cb.OnBlankScreen()
		},
	},
	protocol.ReqUnblankScreen: {
		response: protocol.RspUnblankScreen,
		invoke: func(cb CallbackClient, _ protocol.Message) ([]any, error) {
			return nil, cb.OnUnblankScreen()
		},
	},
	protocol.ReqGetBatteryState: {
		response: protocol.RspGetBatteryState,
		invoke: func(cb CallbackClient, _ protocol.Message) ([]any, error) {
			state, err := cb.OnGetBatteryState()
			if err != nil {
				return nil, err
			}
			return []any{state.Charging, state.Capacity, state.TimeRemaining, state.Wattage}, nil
		},
	},
	protocol.ReqGetPeripheralEnabled: {
		params:   []protocol.ParamType{protocol.TypeInt},
		response: protocol.RspGetPeripheralEnabled,
		invoke: func(cb CallbackClient, req protocol.Message) ([]any, error) {
			peripheralID, err := req.Int(0)
			if err != nil {
				return nil, err
			}
			enabled, err := cb.OnGetPeripheralEnabled(peripheralID)
			if err != nil {
				return nil, err
			}
			value := 0
			if enabled {
				value = 1
			}
			return []any{value}, nil
		},
	},
	protocol.ReqGetScreenBlankingTimeout: {
		response: protocol.RspGetScreenBlankingTimeout,
		invoke: func(cb CallbackClient, _ protocol.Message) ([]any, error) {
			timeout, err := cb.OnGetScreenBlankingTimeout()
			if err != nil {
				return nil, err
			}
			return []any{timeout}, nil
		},
	},
	protocol.ReqSetScreenBlankingTimeout: {
		params:   []protocol.ParamType{protocol.TypeInt},
		response: protocol.RspSetScreenBlankingTimeout,
		invoke: func(cb CallbackClient, req protocol.Message) ([]any, error) {
			seconds, err := req.Int(0)
			if err != nil {
				return nil, err
			}
			return nil, cb.OnSetScreenBlankingTimeout(seconds)
		},
	},
}
