// Package journal records what happened to the scene stack, tick by tick,
// together with the input that caused it, and plays the input back.
package journal

// Version is written into every journal
const Version = "1.0"

// FrameInput records input state for a single tick
type FrameInput struct {
	F  uint64 `json:"f"`            // Tick
	P  uint32 `json:"p,omitempty"`  // Held actions, one bit per action
	JP uint32 `json:"jp,omitempty"` // Just pressed actions
	MX int    `json:"mx"`           // MouseX
	MY int    `json:"my"`           // MouseY
	MC bool   `json:"mc,omitempty"` // MouseClick
}

// Entry records one scene stack event
type Entry struct {
	Tick       uint64 `json:"tick"`
	Type       string `json:"type"`
	Kind       string `json:"kind,omitempty"`
	From       string `json:"from"`
	To         string `json:"to"`
	Deleted    int    `json:"deleted,omitempty"`
	Transition bool   `json:"transition,omitempty"`
	Depth      int    `json:"depth"`
	Trackers   int    `json:"trackers"`
}

// Data is a whole journal
type Data struct {
	Version   string       `json:"version"`
	Session   string       `json:"session"` // random id, one per recorder
	StartTime string       `json:"startTime"`
	Entries   []Entry      `json:"entries"`
	Frames    []FrameInput `json:"frames"`
}
