package cache

// ScopedKeyer prefixes every key of an inner Keyer. The serve command scopes
// its runner with "server:" so HTTP traffic and CLI runs sharing a Redis or
// file backend keep separate report and download entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) ReportKey(blueprintHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(blueprintHash, opts)
}

func (k *ScopedKeyer) FetchKey(url string) string {
	return k.prefix + k.inner.FetchKey(url)
}
