package midi

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bep/debounce"
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-pianoroll/debug"
)

// Options configures a Player
type Options struct {
	Channel         uint8 // 0-15
	Velocity        uint8
	PreviewLength   time.Duration
	PreviewDebounce time.Duration // 0 plays every preview
}

// DefaultOptions matches a short audition click on channel 1
func DefaultOptions() Options {
	return Options{
		Channel:       0,
		Velocity:      100,
		PreviewLength: 150 * time.Millisecond,
	}
}

// Player sends previews, sustained notes and plays scheduled events
type Player struct {
	send     Sender
	sendMu   sync.Mutex
	opts     Options
	debounce func(f func())

	mu      sync.Mutex
	playing bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPlayer creates a player writing to send. A nil send drops everything.
func NewPlayer(send Sender, opts Options) *Player {
	p := &Player{send: send, opts: opts}
	if opts.PreviewDebounce > 0 {
		p.debounce = debounce.New(opts.PreviewDebounce)
	}
	return p
}

func (p *Player) write(msg gomidi.Message) {
	if p.send == nil {
		return
	}
	p.sendMu.Lock()
	defer p.sendMu.Unlock()
	if err := p.send(msg); err != nil {
		debug.Log("midi", "send %s: %v", msg, err)
	}
}

func toKey(pitch int) (uint8, bool) {
	if pitch < 0 || pitch > 127 {
		return 0, false
	}
	return uint8(pitch), true
}

// PlayPreview auditions a pitch: note-on now, note-off after PreviewLength
func (p *Player) PlayPreview(pitch int) {
	key, ok := toKey(pitch)
	if !ok {
		return
	}
	play := func() {
		p.write(gomidi.NoteOn(p.opts.Channel, key, p.opts.Velocity))
		time.AfterFunc(p.opts.PreviewLength, func() {
			p.write(gomidi.NoteOff(p.opts.Channel, key))
		})
	}
	if p.debounce != nil {
		p.debounce(play)
		return
	}
	play()
}

// NoteOn starts a sustained preview
func (p *Player) NoteOn(pitch int) {
	if key, ok := toKey(pitch); ok {
		p.write(gomidi.NoteOn(p.opts.Channel, key, p.opts.Velocity))
	}
}

// NoteOff ends a sustained preview
func (p *Player) NoteOff(pitch int) {
	if key, ok := toKey(pitch); ok {
		p.write(gomidi.NoteOff(p.opts.Channel, key))
	}
}

// Playing reports whether scheduled playback is running
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Play stops any running playback and starts the given events
func (p *Player) Play(events []Event) {
	p.Stop()

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At < sorted[j].At
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.mu.Lock()
	p.playing = true
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	debug.Log("transport", "play %d events", len(sorted))
	go p.run(ctx, sorted, done)
}

// Stop cancels playback and waits until held notes are released
func (p *Player) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	debug.Log("transport", "stop")
}

func (p *Player) run(ctx context.Context, events []Event, done chan struct{}) {
	defer close(done)
	held := make(map[uint8]int)
	start := time.Now()

	defer func() {
		for key := range held {
			p.write(gomidi.NoteOff(p.opts.Channel, key))
		}
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	}()

	for _, evt := range events {
		wait := time.Until(start.Add(evt.At))
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return
		}

		switch evt.Type {
		case NoteOn:
			p.write(gomidi.NoteOn(p.opts.Channel, evt.Note, evt.Velocity))
			held[evt.Note]++
		case NoteOff:
			p.write(gomidi.NoteOff(p.opts.Channel, evt.Note))
			if held[evt.Note]--; held[evt.Note] <= 0 {
				delete(held, evt.Note)
			}
		}
	}
}
