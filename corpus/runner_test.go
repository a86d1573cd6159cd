package corpus

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/RyanBlaney/voz-pura/quality"
)

// recordingObserver captures events for assertions
type recordingObserver struct {
	mu       sync.Mutex
	started  []string
	finished map[string]error
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{finished: make(map[string]error)}
}

func (o *recordingObserver) FileStarted(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, path)
}

func (o *recordingObserver) FileFinished(path string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished[path] = err
}

func TestAnalyzeAllUnreadableCorpus(t *testing.T) {
	dir := t.TempDir()

	// Files with audio extensions but no audio content: every decode
	// fails, which must surface as a single corpus-level error rather
	// than a panic or partial result
	var files []string
	for _, name := range []string{"fake1.wav", "fake2.mp3"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
			t.Fatal(err)
		}
		files = append(files, path)
	}

	observer := newRecordingObserver()
	runner, err := NewRunner(nil, observer)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	records, err := runner.AnalyzeAll(context.Background(), files)
	if err == nil {
		t.Fatal("expected corpus-level error for unreadable corpus")
	}
	if records != nil {
		t.Errorf("got %d records, want none", len(records))
	}

	// Every file was attempted and reported individually
	observer.mu.Lock()
	defer observer.mu.Unlock()
	if len(observer.started) != 2 || len(observer.finished) != 2 {
		t.Errorf("observer saw %d started / %d finished, want 2/2",
			len(observer.started), len(observer.finished))
	}
	for path, ferr := range observer.finished {
		if ferr == nil {
			t.Errorf("%s finished without error despite being unreadable", path)
		}
	}
}

func TestNewRunnerRejectsUnknownBackend(t *testing.T) {
	config := DefaultRunnerConfig()
	config.Analyzer.Backend = "bogus"

	if _, err := NewRunner(config, nil); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestSaveRecordsWritesRankedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	records := []*quality.Record{
		{Filename: "low.wav", QualityScore: 40},
		{Filename: "high.wav", QualityScore: 95},
		{Filename: "mid.wav", QualityScore: 70},
	}

	if err := SaveRecords(path, records); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var saved []*quality.Record
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("report is not a JSON array: %v", err)
	}

	// Serialized in rank order, input untouched
	wantOrder := []string{"high.wav", "mid.wav", "low.wav"}
	for i, want := range wantOrder {
		if saved[i].Filename != want {
			t.Errorf("saved[%d] = %s, want %s", i, saved[i].Filename, want)
		}
	}
	if records[0].Filename != "low.wav" {
		t.Error("SaveRecords reordered its input slice")
	}
}
