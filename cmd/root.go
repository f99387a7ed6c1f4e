package cmd

import (
	"fmt"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-pianoroll/clip"
	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/midi"
	"go-pianoroll/roll"
	"go-pianoroll/surface"
	"go-pianoroll/theme"
	"go-pianoroll/tui"
)

type flags struct {
	configPath string
	port       string
	channel    int
	bpm        int
	palette    string
	debug      bool
	debugPath  string
	noMIDI     bool
	saveConfig bool
}

var opts flags

var rootCmd = &cobra.Command{
	Use:   "pianoroll",
	Short: "Terminal piano roll editor",
	Long: `A mouse-driven piano roll for the terminal. Notes are previewed and
played through a MIDI output port.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if opts.saveConfig {
			if err := saveConfig(cfg); err != nil {
				return err
			}
		}
		return run(cfg)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/go-pianoroll/config.json)")
	f.StringVarP(&opts.port, "port", "p", "", "MIDI output port name (substring match)")
	f.IntVarP(&opts.channel, "channel", "c", 0, "MIDI channel 1-16")
	f.IntVarP(&opts.bpm, "bpm", "b", 0, "playback tempo")
	f.StringVar(&opts.palette, "palette", "", "GIMP palette (.gpl) for colors")
	f.BoolVar(&opts.debug, "debug", false, "write a debug log")
	f.StringVar(&opts.debugPath, "debug-log", "", "debug log path (default ~/.config/go-pianoroll/debug.log)")
	f.BoolVar(&opts.noMIDI, "no-midi", false, "run without a MIDI output")
	f.BoolVar(&opts.saveConfig, "save-config", false, "write the effective settings back to the config file")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadConfig reads the config file and applies flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("port") {
		cfg.Output.PortName = opts.port
	}
	if f.Changed("channel") {
		cfg.Output.Channel = opts.channel
	}
	if f.Changed("bpm") {
		cfg.Playback.Tempo = opts.bpm
	}
	if f.Changed("palette") {
		cfg.UI.PaletteFile = opts.palette
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// saveConfig persists cfg to the file it was loaded from
func saveConfig(cfg *config.Config) error {
	if opts.configPath != "" {
		return cfg.SaveTo(opts.configPath)
	}
	return cfg.Save()
}

func loadTheme(cfg *config.Config) (*theme.Theme, error) {
	if cfg.UI.PaletteFile == "" {
		return theme.New(theme.DefaultPalette()), nil
	}
	p, err := theme.LoadGPL(cfg.UI.PaletteFile)
	if err != nil {
		return nil, err
	}
	return theme.New(p), nil
}

// openPlayer opens the configured output. Without one, the editor still
// runs, previews are dropped and the returned warning says why.
func openPlayer(cfg *config.Config) (*midi.Player, string, error) {
	playerOpts := midi.Options{
		Channel:         uint8(cfg.Output.Channel - 1),
		Velocity:        uint8(cfg.Output.Velocity),
		PreviewLength:   time.Duration(cfg.Output.PreviewMillis) * time.Millisecond,
		PreviewDebounce: time.Duration(cfg.Output.PreviewDebounceMs) * time.Millisecond,
	}
	if opts.noMIDI {
		return midi.NewPlayer(nil, playerOpts), "", nil
	}

	send, name, err := midi.OpenOutput(cfg.Output.PortName)
	if err != nil {
		debug.Log("midi", "running without output: %v", err)
		return midi.NewPlayer(nil, playerOpts), "", fault.Wrap(err,
			fmsg.WithDesc("cannot open midi output", "No MIDI output, notes are silent (see `pianoroll ports`)"))
	}
	debug.Log("midi", "output %q channel %d", name, cfg.Output.Channel)
	return midi.NewPlayer(send, playerOpts), name, nil
}

func run(cfg *config.Config) error {
	if opts.debug {
		if err := debug.Enable(opts.debugPath); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}
	session := uuid.New().String()
	debug.Log("session", "start %s", session)

	th, err := loadTheme(cfg)
	if err != nil {
		return err
	}

	player, port, warning := openPlayer(cfg)
	defer midi.Close()
	defer player.Stop()

	grid := cfg.GeometryGrid()
	canvas := surface.NewCanvas()
	editor := roll.NewEditor(canvas, roll.Options{
		Grid:      grid,
		Measures:  cfg.Grid.Measures,
		Colors:    tui.EditorColors(th),
		Audio:     player,
		Transport: player,
		Clipboard: clip.NewSystem(),
		Tempo:     cfg.Playback.Tempo,
		Velocity:  uint8(cfg.Output.Velocity),
	})
	editor.Viewport().CenterOn(0, grid.YOf(cfg.UI.StartPitch))

	m := tui.NewModel(editor, canvas, th, tui.Status{
		Port:    port,
		Tempo:   cfg.Playback.Tempo,
		Session: session,
		Warning: warning,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	debug.Log("session", "end %s (%d notes)", session, editor.Len())
	return nil
}
