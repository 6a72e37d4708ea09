package cache

// ScopedKeyer prefixes every derived key, isolating cache namespaces when
// several projects share one cache directory.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner so all of its keys carry prefix. A nil inner
// defaults to the standard keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ReportKey generates a prefixed report key.
func (k *ScopedKeyer) ReportKey(templateHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(templateHash, opts)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(templateHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(templateHash, opts)
}

// PreviewKey generates a prefixed preview key.
func (k *ScopedKeyer) PreviewKey(templateHash string, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(templateHash, opts)
}
