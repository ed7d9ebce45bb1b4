package formatter

import (
	"gopkg.in/yaml.v3"

	"github.com/xi-proteomics/xiconf/model"
)

// YAML serializes a SearchConfig to YAML.
func YAML(sc *model.SearchConfig) ([]byte, error) {
	return yaml.Marshal(NewDocument(sc))
}
