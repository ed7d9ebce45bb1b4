package formatter

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/xi-proteomics/xiconf/model"
)

// TOML serializes a SearchConfig to TOML.
func TOML(sc *model.SearchConfig) ([]byte, error) {
	return toml.Marshal(NewDocument(sc))
}
