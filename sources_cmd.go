package main

import (
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured price sources",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	for _, src := range cfg.Sources {
		cmd.Printf("%-28s %-10s %-6s %s\n", src.Name, src.Grammar, cfg.EngineFor(src), src.URL)
	}
	cmd.Printf("%d sources\n", len(cfg.Sources))
	return nil
}
