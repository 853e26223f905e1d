package broadcast

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/specialistvlad/stagegrid/internal/editor"
)

// Socket.io event names.
const (
	EventDiagram      = "diagram"
	EventCommand      = "command"
	EventCommandError = "command_error"
)

// CommandError is the payload of EventCommandError.
type CommandError struct {
	Command editor.Command `json:"command"`
	Error   string         `json:"error"`
}

// decodeCommand accepts the first event argument either as a decoded JSON
// object or as a JSON string.
func decodeCommand(args []any) (editor.Command, error) {
	var cmd editor.Command
	if len(args) == 0 {
		return cmd, errors.New("command event carries no payload")
	}

	var raw []byte
	switch v := args[0].(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return cmd, fmt.Errorf("re-encoding command payload: %w", err)
		}
		raw = b
	}
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return cmd, fmt.Errorf("decoding command payload: %w", err)
	}
	return cmd, nil
}
