package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneforge/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			missingRequired := false
			rows := make([][]string, 0, 3)
			for _, status := range deps.CheckBinaries(deps.Toolchain(cfg)) {
				state := "ok"
				if !status.Available {
					state = status.Detail
					if !status.Optional {
						missingRequired = true
					}
				}
				rows = append(rows, []string{status.Name, status.Command, state, status.Description})
			}
			writeTable(out, []string{"Tool", "Command", "Status", "Purpose"}, rows)

			if missingRequired {
				return fmt.Errorf("required tools are missing")
			}
			return nil
		},
	}
}
