package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/leveledit/internal/cli"
	"github.com/aretw0/leveledit/internal/presentation/tui"
	"github.com/aretw0/leveledit/pkg/adapters/memory"
	"github.com/aretw0/leveledit/pkg/filemgr"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage levels in the configured level store",
	Long:  `List, fetch, publish and remove levels in the store selected by leveledit.yaml (file, memory, redis or postgres).`,
}

var storeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored levels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		levels, err := openLevels(cmd)
		if err != nil {
			return err
		}
		defer levels.Close()

		names, err := levels.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list levels: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "No levels stored.")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(out, "- "+name)
		}
		return nil
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <level>",
	Short: "Fetch a stored level into a scene file, or print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		levels, err := openLevels(cmd)
		if err != nil {
			return err
		}
		defer levels.Close()

		scene, err := levels.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load level %q: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if output == "" {
			data, err := json.MarshalIndent(scene, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		mgr := filemgr.New(memory.NewObjects(scene.Objects...), filemgr.WithLogger(logger))
		if err := mgr.SaveToFile(cmd.Context(), output); err != nil {
			return err
		}
		fmt.Fprintln(out, tui.Status(out, true, fmt.Sprintf("%s -> %s", args[0], mgr.TargetPath(output))))
		return nil
	},
}

var storePutCmd = &cobra.Command{
	Use:   "put <level> <scene-file>",
	Short: "Publish a scene file to the level store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		levels, err := openLevels(cmd)
		if err != nil {
			return err
		}
		defer levels.Close()

		scene, err := filemgr.New(memory.NewObjects(), filemgr.WithLogger(logger)).LoadFromFile(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		scene.Name = args[0]

		if err := levels.Save(cmd.Context(), args[0], scene); err != nil {
			return fmt.Errorf("failed to store level %q: %w", args[0], err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tui.Status(out, true, fmt.Sprintf("stored %s (%d objects)", args[0], len(scene.Objects))))
		return nil
	},
}

var storeRmCmd = &cobra.Command{
	Use:   "rm <level>...",
	Short: "Remove one or more levels",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		levels, err := openLevels(cmd)
		if err != nil {
			return err
		}
		defer levels.Close()

		out := cmd.OutOrStdout()
		failed := 0
		for _, name := range args {
			if err := levels.Delete(cmd.Context(), name); err != nil {
				fmt.Fprintln(out, tui.Status(out, false, fmt.Sprintf("%s: %v", name, err)))
				failed++
				continue
			}
			fmt.Fprintln(out, tui.Status(out, true, "removed "+name))
		}
		if failed > 0 {
			return fmt.Errorf("failed to remove %d levels", failed)
		}
		return nil
	},
}

func openLevels(cmd *cobra.Command) (*cli.Levels, error) {
	return cli.OpenLevels(cmd.Context(), cfg.Store, logger)
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeLsCmd)
	storeCmd.AddCommand(storeGetCmd)
	storeCmd.AddCommand(storePutCmd)
	storeCmd.AddCommand(storeRmCmd)

	storeGetCmd.Flags().StringP("output", "o", "", "Write the level to this scene file instead of printing JSON")
}
