package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tlsim/adapter"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the default adapter configuration to a JSON file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		cfg := adapter.DefaultConfig()
		if out == "" {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to serialize adapter config: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}
		if err := cfg.SaveConfig(out); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("out", "", "output path (stdout if empty)")
}
