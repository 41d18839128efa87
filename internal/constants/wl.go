package constants

// Default analysis settings for PDG construction and WL kernel scoring
const (
	// DefaultWLRounds is the number of WL relabeling rounds. Three rounds
	// capture up to three-hop structural context before decay makes further
	// rounds negligible.
	DefaultWLRounds = 3

	// DefaultScanThreshold is the minimum similarity for a file pair to be
	// reported by scan.
	DefaultScanThreshold = 0.8

	// DefaultMinNodes is the minimum PDG size for a file to participate in
	// a scan. Tiny graphs score spuriously high against each other.
	DefaultMinNodes = 3

	// DefaultPDGCacheSize is the number of built PDGs kept by the scan
	// service's LRU cache.
	DefaultPDGCacheSize = 1024
)

// Default file collection patterns
var (
	DefaultIncludePatterns = []string{"**/*.c"}
	DefaultExcludePatterns = []string{}
)
