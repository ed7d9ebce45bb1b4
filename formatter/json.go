package formatter

import (
	"encoding/json"

	"github.com/xi-proteomics/xiconf/model"
)

// JSON serializes a SearchConfig to indented JSON.
func JSON(sc *model.SearchConfig) ([]byte, error) {
	return json.MarshalIndent(NewDocument(sc), "", "  ")
}
