package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/younwookim/scenestack/internal/application/frame"
	"github.com/younwookim/scenestack/internal/application/input"
	"github.com/younwookim/scenestack/internal/application/stack"
)

// Recorder collects stack events and per-tick input.
// It implements stack.Observer.
type Recorder struct {
	data      Data
	recording bool
}

// NewRecorder creates a recorder that starts recording immediately
func NewRecorder() *Recorder {
	return &Recorder{
		data: Data{
			Version:   Version,
			Session:   uuid.NewString(),
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // ~1 minute at 60 TPS
		},
		recording: true,
	}
}

// Observe records a stack event
func (r *Recorder) Observe(ctx *frame.Context, e stack.Event) {
	if !r.recording {
		return
	}

	entry := Entry{
		Tick:       ctx.Tick(),
		Type:       e.Type.String(),
		From:       e.From.String(),
		To:         e.To.String(),
		Deleted:    e.Deleted,
		Transition: e.Transition,
		Depth:      e.Depth,
		Trackers:   e.Trackers,
	}
	if e.Type != stack.EventCompleted {
		entry.Kind = e.Kind.String()
	}
	r.data.Entries = append(r.data.Entries, entry)
}

// RecordFrame records a single tick's input
func (r *Recorder) RecordFrame(tick uint64, in input.State) {
	if !r.recording {
		return
	}

	pressed, just := in.Mask()
	r.data.Frames = append(r.data.Frames, FrameInput{
		F:  tick,
		P:  pressed,
		JP: just,
		MX: in.MouseX,
		MY: in.MouseY,
		MC: in.MouseClick,
	})
}

// Save writes the journal to filename, creating its directory if needed
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 && len(r.data.Entries) == 0 {
		return fmt.Errorf("nothing to save")
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create journal dir: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded ticks
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// EntryCount returns the number of recorded stack events
func (r *Recorder) EntryCount() int {
	return len(r.data.Entries)
}

// Session returns the journal's session id
func (r *Recorder) Session() string {
	return r.data.Session
}

// Data returns the recorded journal
func (r *Recorder) Data() Data {
	return r.data
}

// GenerateFilename creates a filename in dir based on the current time
func GenerateFilename(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("journal_%s.json", time.Now().Format("20060102_150405")))
}
