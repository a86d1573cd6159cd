package corpus

// Observer receives per-file progress events from a corpus run. The core
// stays stateless between calls; anything that wants progress narration
// (a CLI spinner, a log line per file) injects an implementation here.
// Methods may be called concurrently from worker goroutines.
type Observer interface {
	// FileStarted fires when a worker picks up a file
	FileStarted(path string)

	// FileFinished fires when a file completes; err is nil on success
	FileFinished(path string, err error)
}

// NoOpObserver discards all events
type NoOpObserver struct{}

func (NoOpObserver) FileStarted(string) {}

func (NoOpObserver) FileFinished(string, error) {}
