package midi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrNoOutput is returned when no MIDI output port matches
var ErrNoOutput = errors.New("no MIDI output port")

// portScanTimeout bounds port enumeration (CoreMIDI can hang)
const portScanTimeout = 3 * time.Second

// Sender writes one MIDI message to an output
type Sender func(gomidi.Message) error

// OutPorts lists the available output ports, giving up after a timeout
func OutPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(portScanTimeout):
		return nil, fmt.Errorf("list output ports: timed out after %s", portScanTimeout)
	}
}

// OpenOutput opens the output whose name contains name (case-insensitive).
// An empty name opens the first port.
func OpenOutput(name string) (Sender, string, error) {
	outs, err := OutPorts()
	if err != nil {
		return nil, "", err
	}
	want := strings.ToLower(name)
	for _, port := range outs {
		if want != "" && !strings.Contains(strings.ToLower(port.String()), want) {
			continue
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			return nil, "", fmt.Errorf("open output %q: %w", port.String(), err)
		}
		return send, port.String(), nil
	}
	if name == "" {
		return nil, "", ErrNoOutput
	}
	return nil, "", fmt.Errorf("%w matching %q", ErrNoOutput, name)
}

// Close releases the MIDI driver
func Close() {
	gomidi.CloseDriver()
}
