package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"printshop/internal/app/benchmark"
)

func benchmarkCommand() *cli.Command {
	return &cli.Command{
		Name:  "benchmark",
		Usage: "Replay historically failed orders and report which ones the guardrails catch",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "cases",
				Value: "./config/benchmark_orders.yaml",
				Usage: "Path to the benchmark case file",
			},
		},
		Action: runBenchmark,
	}
}

func runBenchmark(c *cli.Context) error {
	kit, err := newToolkit(c)
	if err != nil {
		return err
	}
	defer kit.logger.Sync()

	cases, err := benchmark.LoadCases(c.String("cases"))
	if err != nil {
		return err
	}

	workDir, err := os.MkdirTemp("", "guardctl-benchmark-")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	report, err := benchmark.NewRunner(kit.pipeline, workDir, kit.logger).Run(c.Context, cases)
	if err != nil {
		return err
	}
	if err := report.Write(os.Stdout); err != nil {
		return err
	}

	if !report.OK() {
		return cli.Exit("benchmark found missed or invalid cases", 2)
	}
	return nil
}
