package cache

// ScopedKeyer prefixes every key from an inner Keyer. The HTTP server uses
// it to keep its entries apart from CLI entries on a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// AnalysisKey returns the prefixed analysis key.
func (k *ScopedKeyer) AnalysisKey(inputHash string, opts AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(inputHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

// ScanKey returns the prefixed scan key.
func (k *ScopedKeyer) ScanKey(inputHash string, opts ScanKeyOpts) string {
	return k.prefix + k.inner.ScanKey(inputHash, opts)
}
