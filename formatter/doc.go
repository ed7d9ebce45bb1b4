// Package formatter serializes a validated model.SearchConfig.
//
// This package is organized into:
// - document.go: an exported, tag-annotated view of the model
// - directives.go: canonical directive text (re-loadable by the parser)
// - json.go, yaml.go, toml.go: structured exports of the Document view
//
// The directive output is canonical: loading a file, serializing it and
// loading the result yields an identical model.
package formatter
