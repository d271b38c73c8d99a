package data

// set at build time via ldflags
var (
	Version   string
	GitCommit string
	GitBranch string
)
