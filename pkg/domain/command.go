package domain

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// CommandType identifies a command kind. The set is closed: see CommandTypes.
type CommandType string

const (
	CmdAddShape           CommandType = "ADD_SHAPE"
	CmdAddShapes          CommandType = "ADD_SHAPES"
	CmdDeleteShapes       CommandType = "DELETE_SHAPES"
	CmdDuplicateShapes    CommandType = "DUPLICATE_SHAPES"
	CmdSetSelection       CommandType = "SET_SELECTION"
	CmdMoveShapesDelta    CommandType = "MOVE_SHAPES_DELTA"
	CmdSetPositions       CommandType = "SET_POSITIONS"
	CmdResetRotation      CommandType = "RESET_ROTATION"
	CmdSetAnglesPositions CommandType = "SET_ANGLES_POSITIONS"
	CmdLockShapes         CommandType = "LOCK_SHAPES"
	CmdUnlockShapes       CommandType = "UNLOCK_SHAPES"
	CmdAlignSelected      CommandType = "ALIGN_SELECTED"
	CmdSetTransforms      CommandType = "SET_TRANSFORMS"
	CmdSetStyle           CommandType = "SET_STYLE"
	CmdSetStyles          CommandType = "SET_STYLES"
)

var commandTypes = []CommandType{
	CmdAddShape,
	CmdAddShapes,
	CmdDeleteShapes,
	CmdDuplicateShapes,
	CmdSetSelection,
	CmdMoveShapesDelta,
	CmdSetPositions,
	CmdResetRotation,
	CmdSetAnglesPositions,
	CmdLockShapes,
	CmdUnlockShapes,
	CmdAlignSelected,
	CmdSetTransforms,
	CmdSetStyle,
	CmdSetStyles,
}

// CommandTypes returns every known command type in declaration order.
func CommandTypes() []CommandType {
	out := make([]CommandType, len(commandTypes))
	copy(out, commandTypes)
	return out
}

// Known reports whether t belongs to the closed set of command types.
func (t CommandType) Known() bool {
	for _, known := range commandTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Payload is the loosely typed body of a command.
// Values are either decoded JSON (maps, slices, float64) or typed payload structs.
type Payload map[string]any

// Command is a tagged description of a mutation. Commands are transient values.
type Command struct {
	Type    CommandType `json:"type" yaml:"type" mapstructure:"type"`
	Payload Payload     `json:"payload,omitempty" yaml:"payload,omitempty" mapstructure:"payload"`
}

// Validate checks the envelope only; payload validation is done by the handler.
func (c Command) Validate() error {
	if strings.TrimSpace(string(c.Type)) == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidCommand)
	}
	if !c.Type.Known() {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, c.Type)
	}
	return nil
}

// NewCommand builds a command, encoding a typed payload struct into a Payload map.
// A nil payload yields an empty map.
func NewCommand(t CommandType, payload any) Command {
	cmd := Command{Type: t, Payload: Payload{}}
	if payload == nil {
		return cmd
	}
	if p, ok := payload.(Payload); ok {
		cmd.Payload = p
		return cmd
	}
	if m, ok := payload.(map[string]any); ok {
		cmd.Payload = Payload(m)
		return cmd
	}
	// Struct -> map encoding cannot fail for the payload types of this package.
	_ = mapstructure.Decode(payload, &cmd.Payload)
	return cmd
}

// Decode decodes the payload into out (a pointer to a typed payload struct).
func (c Command) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if c.Payload == nil {
		return nil
	}
	if err := dec.Decode(map[string]any(c.Payload)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, c.Type, err)
	}
	return nil
}

// String renders the command for logs.
func (c Command) String() string {
	return fmt.Sprintf("%s%v", c.Type, map[string]any(c.Payload))
}
