// Package clip mirrors copied notes to the system clipboard
package clip

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"go-pianoroll/debug"
	"go-pianoroll/roll"
)

// header marks clipboard text written by this program
const header = "pianoroll-notes v1"

// System is a roll.Clipboard backed by the OS clipboard. When no clipboard
// utility is available it keeps working from memory.
type System struct {
	mem roll.MemoryClipboard
}

func NewSystem() *System {
	return &System{}
}

// Available reports whether the OS clipboard can be used
func Available() bool {
	return !clipboard.Unsupported
}

func (s *System) WriteNotes(notes []roll.Info) error {
	if err := s.mem.WriteNotes(notes); err != nil {
		return err
	}
	if !Available() {
		return nil
	}
	if err := clipboard.WriteAll(Encode(notes)); err != nil {
		debug.Log("clipboard", "system write failed, keeping memory copy: %v", err)
	}
	return nil
}

// ReadNotes prefers notes on the OS clipboard, such as ones copied from
// another instance, and falls back to the last local copy
func (s *System) ReadNotes() ([]roll.Info, error) {
	if Available() {
		text, err := clipboard.ReadAll()
		if err == nil {
			if notes, err := Decode(text); err == nil {
				return notes, nil
			}
		} else {
			debug.Log("clipboard", "system read failed: %v", err)
		}
	}
	return s.mem.ReadNotes()
}

// Encode writes one "pitch position duration" line per note after a header
func Encode(notes []roll.Info) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, n := range notes {
		fmt.Fprintf(&b, "%d %s %s\n", n.Pitch,
			strconv.FormatFloat(n.Position, 'g', -1, 64),
			strconv.FormatFloat(n.Duration, 'g', -1, 64))
	}
	return b.String()
}

// Decode parses text written by Encode
func Decode(text string) ([]roll.Info, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != header {
		return nil, fmt.Errorf("not note data")
	}

	var notes []roll.Info
	line := 1
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want 3 fields, got %d", line, len(fields))
		}
		pitch, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: pitch: %w", line, err)
		}
		pos, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: position: %w", line, err)
		}
		dur, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: duration: %w", line, err)
		}
		if math.IsNaN(pos) || math.IsInf(pos, 0) || math.IsNaN(dur) || math.IsInf(dur, 0) {
			return nil, fmt.Errorf("line %d: non-finite value", line)
		}
		notes = append(notes, roll.Info{Pitch: pitch, Position: pos, Duration: dur})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}
