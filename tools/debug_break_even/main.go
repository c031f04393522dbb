package main

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/regime"
	"github.com/shopspring/decimal"
)

// Dumps the break-even solver's scan for a case as CSV, then looks for the
// salary at which old minus new changes sign. The solver stops at the first
// level within tolerance; the sign change shows where the regimes actually
// cross even when the solver does not converge.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <case-file>")
		return
	}
	registry := regime.MustDefault()
	c, err := config.NewInputParser(registry).LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	oldDef, newDef, err := registry.Pair(c.AssessmentYear)
	if err != nil {
		panic(err)
	}

	options := breakeven.DefaultSolverOptions()
	options.KeepScan = true
	solver := breakeven.NewSolver(options)
	res, err := solver.FindBreakEven(breakeven.Request{Deductions: c.Deductions, Old: oldDef, New: newDef})
	if err != nil {
		panic(err)
	}

	fmt.Println("Index,Salary,OldTax,NewTax,Difference,Skipped")
	for i, p := range res.Scan {
		fmt.Printf("%d,%s,%s,%s,%s,%t\n", i, p.Income.StringFixed(0), p.OldTax.StringFixed(0),
			p.NewTax.StringFixed(0), p.Difference.StringFixed(0), p.Skipped)
	}
	fmt.Printf("\nSolver: converged=%t iterations=%d (%s)\n", res.Converged, res.Iterations, res.ConvergenceInfo)

	if cross := findCrossing(res.Scan); cross != nil {
		fmt.Printf("Sign change between %s and %s (difference %s -> %s)\n",
			cross.from.Income.StringFixed(0), cross.to.Income.StringFixed(0),
			cross.from.Difference.StringFixed(0), cross.to.Difference.StringFixed(0))
		refine(c, oldDef, newDef, cross)
	} else {
		fmt.Println("No sign change within the scanned range")
	}
}

type crossing struct {
	from, to breakeven.ScanPoint
}

func findCrossing(scan []breakeven.ScanPoint) *crossing {
	var prev *breakeven.ScanPoint
	for i := range scan {
		p := scan[i]
		if p.Skipped {
			continue
		}
		if prev != nil && (p.Difference.IsZero() || p.Difference.Sign() != prev.Difference.Sign()) {
			return &crossing{from: *prev, to: p}
		}
		prev = &scan[i]
	}
	return nil
}

// refine prints liabilities at every ₹10,000 between the two scan levels
func refine(c *domain.Case, oldDef, newDef *domain.RegimeDefinition, cross *crossing) {
	step := decimal.NewFromInt(10000)
	fmt.Println("\nSalary,OldTax,NewTax,Difference")
	for salary := cross.from.Income; salary.LessThanOrEqual(cross.to.Income); salary = salary.Add(step) {
		income := domain.IncomeProfile{Salary: salary}
		oldTax, err := calculation.NetTax(income, c.Deductions, oldDef)
		if err != nil {
			panic(err)
		}
		newTax, err := calculation.NetTax(income, c.Deductions, newDef)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%s,%s,%s,%s\n", salary.StringFixed(0), oldTax.StringFixed(0), newTax.StringFixed(0), oldTax.Sub(newTax).StringFixed(0))
	}
}
