package types

// EmptyPolicy selects how conversations with no renderable messages are
// handled: written as a stub document or skipped with a summary note.
type EmptyPolicy string

const (
	EmptyWrite EmptyPolicy = "write"
	EmptySkip  EmptyPolicy = "skip"
)

// Valid reports whether p is a recognized policy value.
func (p EmptyPolicy) Valid() bool {
	return p == EmptyWrite || p == EmptySkip
}

// ConvertConfig holds settings for the conversion run.
type ConvertConfig struct {
	// OutputDir is the directory for rendered documents. Created if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Workers is the worker pool size. Zero or negative means one worker
	// per available CPU.
	Workers int `json:"workers" yaml:"workers"`

	// EmptyPolicy controls empty-conversation handling (default: write).
	EmptyPolicy EmptyPolicy `json:"empty_policy" yaml:"empty_policy"`

	// MaxTitleLength bounds the sanitized title portion of filenames
	// (default 100).
	MaxTitleLength int `json:"max_title_length" yaml:"max_title_length"`
}

// CatalogConfig holds settings for the document catalog.
type CatalogConfig struct {
	// DBPath is the SQLite database path (default: index.db in the
	// output directory).
	DBPath string `json:"db_path" yaml:"db_path"`
}
