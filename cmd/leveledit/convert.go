package main

import (
	"fmt"

	"github.com/aretw0/leveledit/internal/presentation/tui"
	"github.com/aretw0/leveledit/pkg/adapters/memory"
	"github.com/aretw0/leveledit/pkg/filemgr"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Rewrite a scene file in another format",
	Long: `Loads <in> and saves it to <out>. The format of each side follows its extension
(.scene or .yaml/.yml); <out> without an extension is written as .scene.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		objects := memory.NewObjects()
		mgr := filemgr.New(objects, filemgr.WithLogger(logger))

		scene, err := mgr.LoadFromFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := mgr.SaveToFile(cmd.Context(), args[1]); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tui.Status(out, true, fmt.Sprintf("wrote %d objects to %s", len(scene.Objects), mgr.TargetPath(args[1]))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
