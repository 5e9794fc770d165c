package cache

// SchemaVersion is folded into every report key. Bump it when the encoded
// report changes shape so stale entries are never decoded.
const SchemaVersion = 1

// ReportKeyOpts are the analysis settings that change a report.
type ReportKeyOpts struct {
	Order      string   `json:"order"`
	Directions string   `json:"directions"`
	Footprints []string `json:"footprints,omitempty"` // catalog rule fingerprints
}

// Keyer builds cache keys.
type Keyer interface {
	// ReportKey returns the key for the report of a blueprint whose exchange
	// string hashes to blueprintHash.
	ReportKey(blueprintHash string, opts ReportKeyOpts) string

	// FetchKey returns the key for a blueprint string downloaded from url.
	FetchKey(url string) string
}

// DefaultKeyer is the unscoped [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) ReportKey(blueprintHash string, opts ReportKeyOpts) string {
	return hashKey("report", SchemaVersion, blueprintHash, opts)
}

func (DefaultKeyer) FetchKey(url string) string {
	return "fetch:" + url
}
