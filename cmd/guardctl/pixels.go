package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"printshop/internal/app/domains/entity/etcatalog"
	"printshop/internal/app/domains/entity/etorder"
	"printshop/internal/app/domains/tools/resolution"
)

func pixelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "pixels",
		Usage: "Print the minimum artwork pixels for standard sizes, bleed included",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "size", Usage: "Extra print size, repeatable (default: catalog standard sizes)"},
			&cli.Float64Flag{Name: "bleed", Value: -1, Usage: "Bleed per side in inches (default: catalog minimum)"},
		},
		Action: runPixels,
	}
}

func runPixels(c *cli.Context) error {
	cat, _, err := etcatalog.LoadFile(c.String("catalog"))
	if err != nil {
		return err
	}
	files := cat.FileRequirements()

	bleed := c.Float64("bleed")
	if bleed < 0 {
		bleed = files.MinBleedInches
	}

	sizes := cat.StandardSizes()
	for _, raw := range c.StringSlice("size") {
		s, err := etorder.ParseSize(raw)
		if err != nil {
			return err
		}
		sizes = append(sizes, etcatalog.StandardSize{Label: s.Key(), Width: s.Width, Height: s.Height})
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SIZE\tMIN @%.0f DPI\tRECOMMENDED @%.0f DPI\tMEGAPIXELS\n", files.MinDPI, files.RecommendedDPI)
	for _, s := range sizes {
		minW, minH := resolution.MinimumPixels(s.Width, s.Height, files.MinDPI, bleed)
		recW, recH := resolution.MinimumPixels(s.Width, s.Height, files.RecommendedDPI, bleed)
		fmt.Fprintf(tw, "%s\t%d x %d\t%d x %d\t%.2f MP\n",
			s.Label, minW, minH, recW, recH, float64(recW*recH)/1e6)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nBleed: %v\" per side\n", bleed)
	return nil
}
