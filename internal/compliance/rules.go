// Package compliance evaluates filing and payment deadlines for a taxpayer.
package compliance

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Rule IDs
const (
	RuleITRFiling = "itr_filing"
	RuleGSTReturn = "gst_return"
	RuleTaxAudit  = "tax_audit"
)

// Context is everything a rule can look at for one assessment year
type Context struct {
	Profile        domain.Profile
	Return         domain.ReturnSummary
	AssessmentYear domain.AssessmentYear
	AsOf           time.Time
}

// Rule is a single statutory obligation with a due date and a late penalty
type Rule struct {
	ID       string
	Name     string
	Priority domain.Priority

	// Recurring rules are tied to the calendar rather than to an assessment
	// year and are evaluated once per report.
	Recurring bool

	Applicable func(ctx Context) bool
	DueDate    func(ctx Context) time.Time
	// Satisfied is optional; a rule listed in ReturnSummary.Completed is always satisfied
	Satisfied func(ctx Context) bool
	Penalty   func(ctx Context, daysOverdue int) decimal.Decimal
}

var (
	basicExemption     = decimal.NewFromInt(250000)
	lateFeeThreshold   = decimal.NewFromInt(500000)
	advanceTaxMinimum  = decimal.NewFromInt(10000)
	auditTurnoverLimit = decimal.NewFromInt(10000000)
	presumptiveMargin  = decimal.RequireFromString("0.08")
)

// DefaultRules returns the income-tax and GST obligations evaluated by default
func DefaultRules() []Rule {
	rules := []Rule{itrFilingRule()}
	rules = append(rules, advanceTaxRules()...)
	rules = append(rules, tdsReturnRules()...)
	rules = append(rules, gstReturnRule(), taxAuditRule())
	return rules
}

func date(ctx Context, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, ctx.AsOf.Location())
}

func itrFilingRule() Rule {
	return Rule{
		ID:       RuleITRFiling,
		Name:     "Income tax return filing",
		Priority: domain.PriorityHigh,
		Applicable: func(ctx Context) bool {
			return ctx.Return.GrossTotalIncome.GreaterThan(basicExemption)
		},
		DueDate: func(ctx Context) time.Time {
			return date(ctx, ctx.AssessmentYear.StartYear(), time.July, 31)
		},
		Satisfied: func(ctx Context) bool { return ctx.Return.Filed },
		// Section 234F late fee
		Penalty: func(ctx Context, daysOverdue int) decimal.Decimal {
			switch {
			case ctx.Return.GrossTotalIncome.LessThanOrEqual(lateFeeThreshold):
				return decimal.NewFromInt(1000)
			case daysOverdue <= 90:
				return decimal.NewFromInt(5000)
			}
			return decimal.NewFromInt(10000)
		},
	}
}

type installment struct {
	quarter   int
	yearShift int
	month     time.Month
	share     decimal.Decimal
}

var installments = []installment{
	{1, -1, time.June, decimal.RequireFromString("0.15")},
	{2, -1, time.September, decimal.RequireFromString("0.45")},
	{3, -1, time.December, decimal.RequireFromString("0.75")},
	{4, 0, time.March, decimal.NewFromInt(1)},
}

// advanceTaxDue is the cumulative amount that should have been paid by an installment
func advanceTaxDue(ctx Context, share decimal.Decimal) decimal.Decimal {
	return ctx.Return.Liability().Mul(share)
}

func advanceTaxRules() []Rule {
	rules := make([]Rule, 0, len(installments))
	for _, inst := range installments {
		priority := domain.PriorityMedium
		if inst.quarter == 4 {
			priority = domain.PriorityHigh
		}
		rules = append(rules, Rule{
			ID:       fmt.Sprintf("advance_tax_q%d", inst.quarter),
			Name:     fmt.Sprintf("Advance tax installment %d (%s cumulative)", inst.quarter, inst.share.Mul(decimal.NewFromInt(100)).StringFixed(0)+"%"),
			Priority: priority,
			Applicable: func(ctx Context) bool {
				return ctx.Return.Liability().GreaterThan(advanceTaxMinimum)
			},
			DueDate: func(ctx Context) time.Time {
				return date(ctx, ctx.AssessmentYear.StartYear()+inst.yearShift, inst.month, 15)
			},
			Satisfied: func(ctx Context) bool {
				return ctx.Return.AdvanceTaxPaid.GreaterThanOrEqual(advanceTaxDue(ctx, inst.share))
			},
			// Interest on the shortfall at 1% per 30 days
			Penalty: func(ctx Context, daysOverdue int) decimal.Decimal {
				shortfall := advanceTaxDue(ctx, inst.share).Sub(ctx.Return.AdvanceTaxPaid)
				if !shortfall.IsPositive() {
					return decimal.Zero
				}
				return shortfall.Mul(decimal.RequireFromString("0.01")).
					Mul(decimal.NewFromInt(int64(daysOverdue))).
					Div(decimal.NewFromInt(30)).
					Round(0)
			},
		})
	}
	return rules
}

func tdsReturnRules() []Rule {
	due := []struct {
		yearShift int
		month     time.Month
	}{
		{-1, time.July},
		{-1, time.October},
		{0, time.January},
		{0, time.May},
	}

	rules := make([]Rule, 0, len(due))
	for i, d := range due {
		rules = append(rules, Rule{
			ID:       fmt.Sprintf("tds_return_q%d", i+1),
			Name:     fmt.Sprintf("TDS statement for quarter %d", i+1),
			Priority: domain.PriorityMedium,
			Applicable: func(ctx Context) bool {
				return ctx.Profile.EntityType == domain.EntityBusiness || ctx.Profile.HasTDSDeducted
			},
			DueDate: func(ctx Context) time.Time {
				return date(ctx, ctx.AssessmentYear.StartYear()+d.yearShift, d.month, 31)
			},
			// Section 234E fee
			Penalty: func(ctx Context, daysOverdue int) decimal.Decimal {
				return decimal.Min(decimal.NewFromInt(int64(200*daysOverdue)), decimal.NewFromInt(20000))
			},
		})
	}
	return rules
}

func gstReturnRule() Rule {
	return Rule{
		ID:        RuleGSTReturn,
		Name:      "Monthly GST return",
		Priority:  domain.PriorityHigh,
		Recurring: true,
		Applicable: func(ctx Context) bool {
			return ctx.Profile.GSTRegistered
		},
		DueDate: func(ctx Context) time.Time {
			return date(ctx, ctx.AsOf.Year(), ctx.AsOf.Month(), 20)
		},
		Penalty: func(ctx Context, daysOverdue int) decimal.Decimal {
			fee := decimal.NewFromInt(int64(50 * daysOverdue))
			if ctx.Return.GrossReceipts.IsPositive() {
				fee = decimal.Min(fee, ctx.Return.GrossReceipts.Mul(decimal.RequireFromString("0.001")))
			}
			return fee.Round(0)
		},
	}
}

func taxAuditRule() Rule {
	return Rule{
		ID:       RuleTaxAudit,
		Name:     "Tax audit report",
		Priority: domain.PriorityHigh,
		Applicable: func(ctx Context) bool {
			business := ctx.Return.BusinessIncome
			receipts := ctx.Return.GrossReceipts
			if !business.IsPositive() {
				return false
			}
			return receipts.GreaterThan(auditTurnoverLimit) ||
				business.LessThan(receipts.Mul(presumptiveMargin))
		},
		DueDate: func(ctx Context) time.Time {
			return date(ctx, ctx.AssessmentYear.StartYear(), time.September, 30)
		},
		// Section 271B
		Penalty: func(ctx Context, daysOverdue int) decimal.Decimal {
			return decimal.Min(ctx.Return.GrossReceipts.Mul(decimal.RequireFromString("0.005")), decimal.NewFromInt(150000)).Round(0)
		},
	}
}
