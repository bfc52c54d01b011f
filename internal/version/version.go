package version

// Build metadata, stamped via -ldflags at release time. The defaults
// identify a local development build.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = ""
	Dirty   = "false"
)
