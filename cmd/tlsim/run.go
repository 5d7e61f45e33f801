package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/tlsim/adapter"
	"github.com/sarchlab/tlsim/fabric"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive seeded random traffic through the adapter and verify it.",
	Long: "run builds a host/adapter/SRAM system, queues randomized reads " +
		"and writes, checks every response against a reference model, and " +
		"reports throughput statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		ops, _ := cmd.Flags().GetInt("ops")
		seed, _ := cmd.Flags().GetInt64("seed")
		maxCycles, _ := cmd.Flags().GetUint64("max-cycles")
		grantStall, _ := cmd.Flags().GetBool("grant-stall")
		dStall, _ := cmd.Flags().GetBool("d-stall")

		cfg := adapter.DefaultConfig()
		if configPath != "" {
			loaded, err := adapter.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log.Debugf("config: mem %d bits x 2^%d, outstanding %d, byte access %v",
			cfg.MemDataWidth, cfg.MemAddrWidth, cfg.Outstanding, cfg.ByteAccess)

		var opts []fabric.Option
		if grantStall {
			opts = append(opts, fabric.WithGrantPattern(func(cycle uint64) bool {
				return cycle%3 != 0
			}))
		}
		if dStall {
			opts = append(opts, fabric.WithDReadyPattern(func(cycle uint64) bool {
				return cycle%2 == 0
			}))
		}

		h, err := fabric.NewHarness(cfg, ops, seed, opts...)
		if err != nil {
			return err
		}
		if err := h.GenerateOps(ops); err != nil {
			return err
		}
		if err := h.Run(maxCycles); err != nil {
			return err
		}

		sys := h.System()
		stats := sys.Adapter.Stats()
		fmt.Printf("ops:              %d\n", ops)
		fmt.Printf("cycles:           %d\n", sys.Cycles())
		fmt.Printf("responses:        %d (%d errors)\n",
			stats.Responses, stats.ErrorResponses)
		fmt.Printf("memory reads:     %d\n", stats.Reads)
		fmt.Printf("memory writes:    %d\n", stats.Writes)
		fmt.Printf("admission stalls: %d\n", stats.AdmissionStalls)
		fmt.Printf("throughput:       %.3f responses/cycle\n", stats.Throughput())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("config", "", "path to adapter configuration JSON file")
	runCmd.Flags().Int("ops", 1000, "number of random operations to generate")
	runCmd.Flags().Int64("seed", 1, "random traffic seed")
	runCmd.Flags().Uint64("max-cycles", 1_000_000, "cycle budget before giving up")
	runCmd.Flags().Bool("grant-stall", false, "periodically withhold the SRAM grant")
	runCmd.Flags().Bool("d-stall", false, "periodically refuse responses on the D channel")
}
