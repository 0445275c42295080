package tools

import (
	"encoding/json"
	"fmt"
)

// decodeArgs converts the model-supplied argument mapping into a typed
// per-tool struct. The JSON round trip keeps the decoding rules identical to
// a direct wire decode: wrong types surface as an error the dispatcher turns
// into a result string.
func decodeArgs(args map[string]any, dst any) error {
	if args == nil {
		args = map[string]any{}
	}
	b, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode args: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
