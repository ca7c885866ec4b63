package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"printshop/internal/app/domains/apimodel/response"
	"printshop/internal/app/domains/entity/etorder"
	"printshop/internal/app/domains/guardrail"
	"printshop/internal/app/domains/services/svorder"
	"printshop/internal/app/domains/tools/pricing"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Validate a single order against the shop catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "size", Aliases: []string{"s"}, Usage: "Print size, e.g. 8x10", Required: true},
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Path to the artwork file", Required: true},
			&cli.StringFlag{Name: "paper", Value: etorder.DefaultPaperStock, Usage: "Paper stock"},
			&cli.StringFlag{Name: "color", Value: etorder.DefaultColor, Usage: "Paper color"},
			&cli.StringFlag{Name: "finish", Value: etorder.DefaultFinish, Usage: "Paper finish"},
			&cli.IntFlag{Name: "quantity", Aliases: []string{"q"}, Value: 1, Usage: "Number of prints"},
			&cli.BoolFlag{Name: "full-color", Value: true, Usage: "Print in full color"},
			&cli.StringFlag{Name: "rush", Usage: "Rush type (rush, express)"},
			&cli.StringFlag{Name: "ink", Usage: "Ink type (cmyk, spot, pantone, metallic, white)"},
			&cli.StringSliceFlag{Name: "service", Usage: "Special service, repeatable"},
			&cli.StringFlag{Name: "format", Value: "table", Usage: "Output format (table, json)"},
		},
		Action: runCheck,
	}
}

func runCheck(c *cli.Context) error {
	kit, err := newToolkit(c)
	if err != nil {
		return err
	}
	defer kit.logger.Sync()

	size, err := etorder.ParseSize(c.String("size"))
	if err != nil {
		return err
	}
	path := c.String("file")
	order, err := etorder.NewOrderRequest(etorder.Params{
		Size:            size,
		PaperStock:      c.String("paper"),
		Color:           c.String("color"),
		Finish:          c.String("finish"),
		Quantity:        c.Int("quantity"),
		ArtworkPath:     path,
		Filename:        filepath.Base(path),
		FullColor:       c.Bool("full-color"),
		RushType:        c.String("rush"),
		InkType:         c.String("ink"),
		SpecialServices: c.StringSlice("service"),
	})
	if err != nil {
		return err
	}

	verdict := kit.pipeline.Run(c.Context, order)

	switch c.String("format") {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response.FromVerdict(verdict)); err != nil {
			return err
		}
	default:
		printVerdict(verdict)
	}

	if !verdict.Valid() {
		return cli.Exit("", 2)
	}
	return nil
}

func printVerdict(v *guardrail.Verdict) {
	fmt.Println(svorder.StatusText(v))
	fmt.Println(strings.Repeat("-", 60))

	printList("Errors", v.Errors())
	printList("Warnings", v.Warnings())
	printList("Reasoning", v.Reasoning())

	s := v.Summary()
	if s == nil || s.Price == nil {
		return
	}
	p := s.Price
	fmt.Printf("\n%s on %s (%s, %s) x%d\n", s.Size, s.Paper, s.Color, s.Finish, s.Quantity)
	fmt.Printf("  File:      %s, %.0f DPI (%s)\n", s.File.PixelDimensions, s.File.DPI, s.File.Quality)
	fmt.Printf("  Per sheet: %s (%s, %s off)\n", pricing.FormatMoney(p.PerSheetCost), p.QuantityBreak, p.DiscountPercent())
	fmt.Printf("  Sheets:    %s\n", pricing.FormatMoney(p.SheetsCost))
	fmt.Printf("  Setup fee: %s\n", pricing.FormatMoney(p.SetupFee))
	fmt.Printf("  Rush:      %sx\n", p.RushMultiplier.String())
	fmt.Printf("  Total:     %s (%s per unit)\n", p.FormattedTotal(), pricing.FormatMoney(p.PricePerUnit))
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}
