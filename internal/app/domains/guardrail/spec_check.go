package guardrail

import (
	"context"
	"fmt"
	"strings"

	"printshop/internal/app/domains/entity/etcatalog"
)

// specCheck 第一层：规格校验，收集全部错误后一次性拒绝
func (p *Pipeline) specCheck(_ context.Context, r *run) *Rejection {
	o := r.order
	size := o.Size()
	r.verdict.reason(fmt.Sprintf("Layer 1 (spec check): validating %s %s (%s, %s) x%d against shop capabilities",
		size.Label(), o.PaperStock(), o.Color(), o.Finish(), o.Quantity()))

	var errs []string
	errs = append(errs, p.checkSize(size.Width, size.Height)...)

	stock, found := p.catalog.Stock(o.PaperStock())
	if inv := p.inventory.CheckAvailability(o.PaperStock(), o.Color(), o.Finish()); !inv.Available {
		errs = append(errs, withAlternatives(inv.Reason, inv.Alternatives))
	}

	printing := p.catalog.Printing()
	if o.FullColor() {
		if !printing.FullColor {
			errs = append(errs, "Full-color printing is not offered by this shop")
		}
		dark := p.catalog.IsDarkColor(o.Color())
		underprint := false
		if found {
			dark = p.catalog.IsDarkSelection(stock, o.Color())
			underprint = p.catalog.CanUnderprintWhite(stock)
		}
		if dark && !underprint {
			errs = append(errs, fmt.Sprintf(
				"Full-color printing on dark paper (%s, %s) requires white ink underprinting, which this shop does not offer",
				o.PaperStock(), o.Color()))
		}
	}

	if msg := checkInk(o.InkType(), printing); msg != "" {
		errs = append(errs, msg)
	}
	errs = append(errs, p.checkServices(o.SpecialServices())...)

	if len(errs) > 0 {
		r.verdict.reason(fmt.Sprintf("Layer 1 failed: %d specification violation(s)", len(errs)))
		return reject(LayerSpecCheck, errs...)
	}

	r.verdict.reason(fmt.Sprintf("Layer 1 passed: %s on %s is within shop capabilities", size.Label(), o.PaperStock()))
	return nil
}

func (p *Pipeline) checkSize(w, h float64) []string {
	limits := p.catalog.SizeLimits()
	var errs []string
	if w < limits.MinWidth {
		errs = append(errs, fmt.Sprintf(`Width %v" is below the minimum of %v"`, w, limits.MinWidth))
	}
	if w > limits.MaxWidth {
		errs = append(errs, fmt.Sprintf(`Width %v" exceeds the maximum of %v"`, w, limits.MaxWidth))
	}
	if h < limits.MinHeight {
		errs = append(errs, fmt.Sprintf(`Height %v" is below the minimum of %v"`, h, limits.MinHeight))
	}
	if h > limits.MaxHeight {
		errs = append(errs, fmt.Sprintf(`Height %v" exceeds the maximum of %v"`, h, limits.MaxHeight))
	}
	return errs
}

// checkInk 校验指定的油墨类型，空值和标准四色总是允许
func checkInk(ink string, printing etcatalog.PrintingCapabilities) string {
	var supported bool
	switch ink {
	case "", "cmyk", "standard", "process", "full_color":
		return ""
	case "spot":
		supported = printing.SpotColor
	case "pantone":
		supported = printing.PantoneMatching
	case "metallic":
		supported = printing.MetallicInks
	case "white":
		supported = printing.WhiteInk
	default:
		return fmt.Sprintf("Unknown ink type '%s'", ink)
	}
	if supported {
		return ""
	}
	return fmt.Sprintf("Ink type '%s' is not supported (this shop prints standard CMYK only)", ink)
}

func (p *Pipeline) checkServices(services []string) []string {
	var errs []string
	for _, svc := range services {
		available, known := p.catalog.Service(svc)
		switch {
		case !known:
			errs = append(errs, fmt.Sprintf("Unknown special service '%s' (offered: %s)", svc, strings.Join(p.offeredServices(), ", ")))
		case !available:
			errs = append(errs, fmt.Sprintf("Special service '%s' is not available", svc))
		}
	}
	return errs
}

func (p *Pipeline) offeredServices() []string {
	var out []string
	for _, name := range p.catalog.ServiceNames() {
		if ok, _ := p.catalog.Service(name); ok {
			out = append(out, name)
		}
	}
	return out
}

func withAlternatives(reason string, alternatives []string) string {
	if len(alternatives) == 0 {
		return reason
	}
	return fmt.Sprintf("%s. Available alternatives: %s", reason, strings.Join(alternatives, ", "))
}
