// guardctl 离线运行护栏流水线
//
// Usage:
//
//	guardctl check --size 8x10 --paper "100lb Matte" --file art.png
//	guardctl benchmark --cases config/benchmark_orders.yaml
//	guardctl pixels --bleed 0.125
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"printshop/internal/app/domains/entity/etcatalog"
	"printshop/internal/app/domains/guardrail"
	"printshop/internal/app/domains/tools/inventory"
	"printshop/internal/app/domains/tools/pricing"
	"printshop/internal/app/domains/tools/resolution"
	"printshop/internal/app/infra/raster"
	"printshop/pkg/logger"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "guardctl",
		Usage:   "Run print order guardrails from the command line",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Value:   "./config/catalog.yaml",
				Usage:   "Path to the shop catalog and pricing file",
				EnvVars: []string{"PRINTSHOP_CATALOG_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"PRINTSHOP_APP_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			checkCommand(),
			benchmarkCommand(),
			pixelsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// toolkit 命令共用的目录与流水线
type toolkit struct {
	catalog  *etcatalog.Catalog
	table    *etcatalog.PricingTable
	pipeline *guardrail.Pipeline
	logger   logger.Logger
}

func newToolkit(c *cli.Context) (*toolkit, error) {
	log, err := logger.NewZapLogger(c.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cat, table, err := etcatalog.LoadFile(c.String("catalog"))
	if err != nil {
		return nil, err
	}

	pipeline := guardrail.NewPipeline(
		cat,
		inventory.NewChecker(cat),
		resolution.NewChecker(cat.FileRequirements(), resolution.DefaultLimits(), raster.NewFitzRasterizer()),
		pricing.NewCalculator(table),
		log,
	)
	return &toolkit{catalog: cat, table: table, pipeline: pipeline, logger: log}, nil
}
