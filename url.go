package datasync

// ResolveURL joins base and relative with a single "/". An empty relative
// returns base unchanged. Nothing is escaped or normalized.
func ResolveURL(base, relative string) string {
	if relative == "" {
		return base
	}
	return base + "/" + relative
}
