package version

// Build information, overridden at release time with
// -ldflags "-X github.com/aiden/nedots/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
