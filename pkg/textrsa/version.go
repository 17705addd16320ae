package textrsa

var (
	Version   = "v0.0.0-in-progress"
	GitCommit = "unknown"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// BuildCommit returns the commit the binary was built from, or "unknown".
func BuildCommit() string {
	return GitCommit
}
