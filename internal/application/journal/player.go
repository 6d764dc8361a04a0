package journal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/scenestack/internal/application/input"
)

// Load reads a journal from a file
func Load(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Data
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}

	return &data, nil
}

// Player feeds recorded input back one tick at a time
type Player struct {
	data  Data
	frame int
}

// NewPlayer creates a player from journal data
func NewPlayer(data Data) *Player {
	return &Player{data: data}
}

// Next returns the input for the next tick and advances.
// It returns false once every recorded tick was played.
func (p *Player) Next() (input.State, bool) {
	if p.frame >= len(p.data.Frames) {
		return input.State{}, false
	}

	fi := p.data.Frames[p.frame]
	p.frame++

	s := input.FromMask(fi.P, fi.JP)
	s.MouseX = fi.MX
	s.MouseY = fi.MY
	s.MouseClick = fi.MC
	return s, true
}

// CurrentFrame returns the number of ticks played
func (p *Player) CurrentFrame() int {
	return p.frame
}

// TotalFrames returns the number of recorded ticks
func (p *Player) TotalFrames() int {
	return len(p.data.Frames)
}

// Entries returns the recorded stack events
func (p *Player) Entries() []Entry {
	return p.data.Entries
}

// Reset rewinds to the first tick
func (p *Player) Reset() {
	p.frame = 0
}
