package exitcode

// Per-record download failures never change the exit status.
const (
	Success       = 0
	UsageError    = 1
	ManifestError = 2
	OutputError   = 3
)
