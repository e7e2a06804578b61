package main

import (
	"github.com/spf13/cobra"

	"github.com/Marga-Ghale/skill-swap/internal/tui"
)

// browseCmd opens the interactive screen
var browseCmd = &cobra.Command{
	Use:     "browse",
	Short:   "Browse members and answer requests interactively",
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(api, logger)
	},
}
