package cache

// Keyer derives cache keys for analysis artifacts.
type Keyer interface {
	// AnalysisKey identifies a pipeline result for an input and option set.
	AnalysisKey(inputHash string, opts AnalysisKeyOpts) string
	// ArtifactKey identifies a rendered graph (DOT or SVG).
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
	// ScanKey identifies per-marker neighborhood scores.
	ScanKey(inputHash string, opts ScanKeyOpts) string
}

// AnalysisKeyOpts lists every option that changes a pipeline result.
type AnalysisKeyOpts struct {
	Genomes   []string `json:"genomes,omitempty"`
	Core      bool     `json:"core"`
	Partition bool     `json:"partition"`
	Splits    bool     `json:"splits"`
	Tree      bool     `json:"tree"`
	Residuals bool     `json:"residuals"`
}

// ArtifactKeyOpts lists every option that changes a rendered graph.
type ArtifactKeyOpts struct {
	Genomes []string `json:"genomes,omitempty"`
	Format  string   `json:"format"`
	Core    bool     `json:"core"`
	Colors  bool     `json:"colors"`
}

// ScanKeyOpts lists every option that changes a neighborhood scan.
type ScanKeyOpts struct {
	Genomes []string `json:"genomes,omitempty"`
	Core    bool     `json:"core"`
	Depth   int      `json:"depth"`
}

// DefaultKeyer hashes inputs and options into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// AnalysisKey returns "analysis:<hash>".
func (DefaultKeyer) AnalysisKey(inputHash string, opts AnalysisKeyOpts) string {
	return hashKey("analysis", inputHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// ScanKey returns "scan:<hash>".
func (DefaultKeyer) ScanKey(inputHash string, opts ScanKeyOpts) string {
	return hashKey("scan", inputHash, opts)
}
