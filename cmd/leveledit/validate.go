package main

import (
	"fmt"

	"github.com/aretw0/leveledit/internal/presentation/tui"
	"github.com/aretw0/leveledit/pkg/adapters/memory"
	"github.com/aretw0/leveledit/pkg/filemgr"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scene-file>...",
	Short: "Check scene files for format and hierarchy errors",
	Long:  `Parses each scene file and checks its header, records, unique object IDs and parent links.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0

		for _, path := range args {
			mgr := filemgr.New(memory.NewObjects(), filemgr.WithLogger(logger))
			scene, err := mgr.LoadFromFile(cmd.Context(), path)
			if err != nil {
				failed++
				fmt.Fprintln(out, tui.Status(out, false, fmt.Sprintf("%s: %v", path, err)))
				continue
			}
			fmt.Fprintln(out, tui.Status(out, true, fmt.Sprintf("%s: %d objects", path, len(scene.Objects))))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d scene files are invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
