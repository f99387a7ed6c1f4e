package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-pianoroll/midi"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Lists MIDI output ports",
	Long:  `Lists MIDI output ports. Any substring of a name works for --port.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.Close()
		outs, err := midi.OutPorts()
		if err != nil {
			return fmt.Errorf("%w (on macOS: sudo killall coreaudiod midiserver)", err)
		}
		if len(outs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no MIDI output ports")
			return nil
		}
		for i, p := range outs {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d: %s\n", i, p.String())
		}
		return nil
	},
}
