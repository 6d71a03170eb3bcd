package domain

// LoadState is the per-request lifecycle of a page load.
type LoadState string

const (
	LoadIdle      LoadState = "idle"
	LoadLoading   LoadState = "loading"
	LoadSuccess   LoadState = "success"
	LoadError     LoadState = "error"
	LoadExhausted LoadState = "exhausted" // terminal for append modes once hasMore is false
)
