package protocol

import (
	"strconv"
	"strings"
)

// Encode serializes the message into its single-line wire form.
func Encode(m Message) string {
	if len(m.Params) == 0 {
		return strconv.Itoa(int(m.ID))
	}
	parts := make([]string, 0, len(m.Params)+1)
	parts = append(parts, strconv.Itoa(int(m.ID)))
	parts = append(parts, m.Params...)
	return strings.Join(parts, Delimiter)
}

// Decode parses a wire line back into a message. It fails with a DecodeError
// when the line is empty, the id token is not numeric, or the id is not part
// of the message catalogue.
func Decode(wire string) (Message, error) {
	if strings.TrimSpace(wire) == "" {
		return Message{}, &DecodeError{Wire: wire, Reason: "empty message"}
	}
	parts := strings.Split(wire, Delimiter)
	raw, err := strconv.Atoi(parts[0])
	if err != nil {
		return Message{}, &DecodeError{Wire: wire, Reason: "id token is not numeric"}
	}
	id := ID(raw)
	if !id.Known() {
		return Message{}, &DecodeError{Wire: wire, Reason: "unknown message id " + parts[0]}
	}
	return Message{ID: id, Params: parts[1:]}, nil
}
