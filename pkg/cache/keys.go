package cache

// Keyer builds cache keys for analysis results.
type Keyer interface {
	// ResultKey returns the key for the result of op on the graph with the
	// given content hash. opts must be JSON-encodable; different option
	// values yield different keys.
	ResultKey(op, graphHash string, opts any) string
}

// DefaultKeyer produces keys of the form "result:<op>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey implements [Keyer].
func (DefaultKeyer) ResultKey(op, graphHash string, opts any) string {
	return digest("result:"+op, graphHash, opts)
}
