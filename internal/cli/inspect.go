package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/drawable"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [state.json]",
		Short: "Summarize a saved drawing state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			summarize(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}

type kindCount struct {
	alive, dead int
}

func summarize(w io.Writer, snap *sketchpad.Snapshot) {
	fmt.Fprintf(w, "canvas   %dx%d, %d layers\n", snap.Width, snap.Height, snap.LayerCount)

	byLayer := make(map[int]map[drawable.Kind]*kindCount)
	for _, d := range snap.Drawables {
		if d == nil {
			continue
		}
		kinds := byLayer[d.Layer]
		if kinds == nil {
			kinds = make(map[drawable.Kind]*kindCount)
			byLayer[d.Layer] = kinds
		}
		c := kinds[d.Kind]
		if c == nil {
			c = &kindCount{}
			kinds[d.Kind] = c
		}
		if d.Alive {
			c.alive++
		} else {
			c.dead++
		}
	}

	layers := make([]int, 0, len(byLayer))
	for l := range byLayer {
		layers = append(layers, l)
	}
	sort.Ints(layers)

	fmt.Fprintf(w, "objects  %d\n", len(snap.Drawables))
	for _, l := range layers {
		for _, k := range []drawable.Kind{drawable.KindStroke, drawable.KindImage, drawable.KindText} {
			if c := byLayer[l][k]; c != nil {
				fmt.Fprintf(w, "  layer %d  %-6s %d alive, %d removed\n", l, k, c.alive, c.dead)
			}
		}
	}
	fmt.Fprintf(w, "history  %d entries, cursor %d\n", len(snap.History), snap.Cursor)
}
