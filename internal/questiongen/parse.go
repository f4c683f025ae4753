package questiongen

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/triviaz/internal/llm"
)

// parseBatch decodes the {"questions": [...]} wrapper into records,
// stripping a surrounding markdown code fence if present.
func parseBatch(raw []byte) ([]Record, error) {
	body := llm.TrimCodeFence(raw)
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	var out batchOutput
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if out.Questions == nil {
		return nil, fmt.Errorf("response has no \"questions\" array")
	}
	return out.Questions, nil
}
