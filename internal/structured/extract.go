package structured

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ExtractJSON pulls a JSON object out of raw model output. Markdown code
// fences are stripped, then the text is sliced from the first '{' to the
// last '}' to drop surrounding prose. If the result still is not valid
// JSON it is run through jsonrepair, which closes truncated structures
// and fixes quoting. Output that resists repair is returned as-is for
// validation to reject.
func ExtractJSON(raw json.RawMessage) json.RawMessage {
	s := strings.TrimSpace(string(raw))
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}

	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	if repaired, err := jsonrepair.JSONRepair(s); err == nil {
		return json.RawMessage(repaired)
	}
	return json.RawMessage(s)
}
