package compliance

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	dueSoonWindow    = 30
	warningWindow    = 7
	improvementScore = 80
)

// Evaluator applies a rule set to a taxpayer's returns
type Evaluator struct {
	Rules  []Rule
	Logger calculation.Logger
}

// NewEvaluator creates an evaluator; with no rules it uses DefaultRules
func NewEvaluator(rules ...Rule) *Evaluator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Evaluator{Rules: rules, Logger: calculation.NopLogger{}}
}

// Evaluate runs the default rules
func Evaluate(profile domain.Profile, returns []domain.ReturnSummary, asOf time.Time) (*domain.ComplianceReport, error) {
	return NewEvaluator().Evaluate(profile, returns, asOf)
}

// Evaluate checks every applicable rule for every assessment year in returns.
// Without returns the assessment year containing asOf is checked.
func (e *Evaluator) Evaluate(profile domain.Profile, returns []domain.ReturnSummary, asOf time.Time) (*domain.ComplianceReport, error) {
	contexts, err := e.contexts(profile, returns, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.ComplianceReport{
		AsOf:         asOf,
		Statuses:     []domain.ComplianceStatus{},
		Alerts:       []domain.Alert{},
		TotalPenalty: decimal.Zero,
	}

	for i, ctx := range contexts {
		for _, rule := range e.Rules {
			// recurring rules are checked against the latest year only
			if rule.Recurring && i != len(contexts)-1 {
				continue
			}
			if rule.Applicable != nil && !rule.Applicable(ctx) {
				continue
			}
			status := e.evaluateRule(rule, ctx)
			report.Statuses = append(report.Statuses, status)
			report.TotalPenalty = report.TotalPenalty.Add(status.PenaltyAmount)
			if alert, ok := alertFor(status); ok {
				report.Alerts = append(report.Alerts, alert)
			}
		}
	}

	sort.SliceStable(report.Alerts, func(i, j int) bool {
		a, b := report.Alerts[i], report.Alerts[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.DaysUntilDue < b.DaysUntilDue
	})

	report.Score = score(report.Statuses)
	report.Recommendations = recommendations(report)

	e.Logger.Debugf("compliance: %d rules applicable, score %d, %d alerts",
		len(report.Statuses), report.Score, len(report.Alerts))
	return report, nil
}

func (e *Evaluator) contexts(profile domain.Profile, returns []domain.ReturnSummary, asOf time.Time) ([]Context, error) {
	if len(returns) == 0 {
		ay := domain.AssessmentYearFor(asOf)
		return []Context{{
			Profile:        profile,
			Return:         domain.ReturnSummary{AssessmentYear: ay.String()},
			AssessmentYear: ay,
			AsOf:           asOf,
		}}, nil
	}

	seen := make(map[string]bool, len(returns))
	contexts := make([]Context, 0, len(returns))
	for _, r := range returns {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid return summary: %w", err)
		}
		ay, _ := domain.ParseAssessmentYear(r.AssessmentYear)
		if seen[ay.String()] {
			e.Logger.Warnf("duplicate return summary for AY %s ignored", ay)
			continue
		}
		seen[ay.String()] = true
		contexts = append(contexts, Context{Profile: profile, Return: r, AssessmentYear: ay, AsOf: asOf})
	}

	sort.SliceStable(contexts, func(i, j int) bool {
		return contexts[i].AssessmentYear.StartYear() < contexts[j].AssessmentYear.StartYear()
	})
	return contexts, nil
}

func (e *Evaluator) evaluateRule(rule Rule, ctx Context) domain.ComplianceStatus {
	due := rule.DueDate(ctx)
	days := daysUntil(due, ctx.AsOf)

	status := domain.ComplianceStatus{
		RuleID:         rule.ID,
		Name:           rule.Name,
		AssessmentYear: ctx.AssessmentYear.String(),
		Priority:       rule.Priority,
		Applicable:     true,
		DueDate:        due,
		DaysUntilDue:   days,
		PenaltyAmount:  decimal.Zero,
	}
	if days < 0 {
		status.DaysOverdue = -days
	}

	status.Satisfied = ctx.Return.HasCompleted(rule.ID) || (rule.Satisfied != nil && rule.Satisfied(ctx))
	switch {
	case status.Satisfied:
		status.Status = domain.StatusCompliant
	case days < 0:
		status.Status = domain.StatusOverdue
		if rule.Penalty != nil {
			status.PenaltyAmount = rule.Penalty(ctx, status.DaysOverdue)
		}
	case days <= dueSoonWindow:
		status.Status = domain.StatusDueSoon
	default:
		status.Status = domain.StatusCompliant
	}
	return status
}

// daysUntil counts whole days from asOf to the due date, rounding up
func daysUntil(due, asOf time.Time) int {
	return int(math.Ceil(due.Sub(asOf).Hours() / 24))
}

func alertFor(s domain.ComplianceStatus) (domain.Alert, bool) {
	if s.Satisfied {
		return domain.Alert{}, false
	}

	alert := domain.Alert{
		RuleID:       s.RuleID,
		Priority:     s.Priority,
		DueDate:      s.DueDate,
		DaysUntilDue: s.DaysUntilDue,
	}
	switch {
	case s.DaysUntilDue < 0:
		alert.Severity = domain.SeverityError
		alert.Message = fmt.Sprintf("%s (AY %s) is overdue by %d days; penalty %s",
			s.Name, s.AssessmentYear, s.DaysOverdue, money.FormatINRWhole(s.PenaltyAmount))
	case s.DaysUntilDue == 0:
		alert.Severity = domain.SeverityWarning
		alert.Message = fmt.Sprintf("%s (AY %s) is due today", s.Name, s.AssessmentYear)
	case s.DaysUntilDue <= warningWindow:
		alert.Severity = domain.SeverityWarning
		alert.Message = fmt.Sprintf("%s (AY %s) is due in %d days", s.Name, s.AssessmentYear, s.DaysUntilDue)
	case s.DaysUntilDue <= dueSoonWindow:
		alert.Severity = domain.SeverityInfo
		alert.Message = fmt.Sprintf("%s (AY %s) is due on %s", s.Name, s.AssessmentYear, s.DueDate.Format("2 Jan 2006"))
	default:
		return domain.Alert{}, false
	}
	return alert, true
}

func score(statuses []domain.ComplianceStatus) int {
	if len(statuses) == 0 {
		return 100
	}
	total := 0
	for _, s := range statuses {
		switch {
		case s.Status == domain.StatusCompliant:
			total += 100
		case s.Status == domain.StatusDueSoon:
			total += 70
		case s.DaysOverdue <= dueSoonWindow:
			total += 30
		}
	}
	return int(math.Round(float64(total) / float64(len(statuses))))
}

func recommendations(report *domain.ComplianceReport) []string {
	var recs []string
	for _, s := range report.Statuses {
		switch s.Status {
		case domain.StatusOverdue:
			recs = append(recs, fmt.Sprintf("Urgent: complete %s for AY %s now; %s in penalties has accrued",
				s.Name, s.AssessmentYear, money.FormatINRWhole(s.PenaltyAmount)))
		case domain.StatusDueSoon:
			recs = append(recs, fmt.Sprintf("Prepare %s for AY %s before %s",
				s.Name, s.AssessmentYear, s.DueDate.Format("2 Jan 2006")))
		}
	}
	if report.Score < improvementScore {
		recs = append(recs, fmt.Sprintf("Compliance score is %d; schedule reminders ahead of statutory due dates", report.Score))
	}
	return recs
}
