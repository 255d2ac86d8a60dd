package main

import (
	"fmt"
	"os"

	"github.com/aretw0/leveledit/internal/presentation/graph"
	"github.com/aretw0/leveledit/internal/presentation/tui"
	"github.com/aretw0/leveledit/pkg/adapters/memory"
	"github.com/aretw0/leveledit/pkg/filemgr"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <scene-file>",
	Short: "Summarize the objects in a scene file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		asGraph, _ := cmd.Flags().GetBool("graph")
		selected, _ := cmd.Flags().GetStringSlice("select")

		scene, err := filemgr.New(memory.NewObjects(), filemgr.WithLogger(logger)).LoadFromFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asGraph {
			fmt.Fprint(out, graph.GenerateMermaid(scene, &graph.Overlay{Selected: selected}))
			return nil
		}

		width := 0
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			width, _, _ = term.GetSize(int(f.Fd()))
		} else {
			plain = true
		}

		rendered, err := tui.NewRenderer(plain, width)(tui.SceneMarkdown(scene))
		if err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("plain", false, "Print raw markdown instead of styled output")
	inspectCmd.Flags().Bool("graph", false, "Print the object hierarchy as a Mermaid flowchart")
	inspectCmd.Flags().StringSlice("select", nil, "Object IDs to highlight in --graph output")
}
