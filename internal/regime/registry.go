// Package regime holds the per-assessment-year slab tables for each tax regime.
package regime

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

//go:embed tables.yaml
var defaultTables []byte

// tableFile is the on-disk layout of a slab table document
type tableFile struct {
	Regimes []domain.RegimeDefinition `yaml:"regimes"`
}

// Registry looks up validated regime definitions by regime and assessment year.
// It is read-only once built and safe for concurrent use.
type Registry struct {
	byYear map[string]map[domain.RegimeID]*domain.RegimeDefinition
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry built from the embedded tables
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Load(defaultTables)
	})
	return defaultRegistry, defaultErr
}

// MustDefault is Default for callers that treat a broken embedded table as fatal
func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}

// LoadFile reads and validates slab tables from a YAML file
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regime tables: %w", err)
	}
	return Load(data)
}

// Load parses and validates slab tables. Every definition is checked here so
// lookups never see a malformed table.
func Load(data []byte) (*Registry, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse regime tables: %w", err)
	}
	if len(file.Regimes) == 0 {
		return nil, &domain.MalformedRegimeDefinitionError{Reason: "no regimes defined"}
	}

	r := &Registry{byYear: make(map[string]map[domain.RegimeID]*domain.RegimeDefinition)}
	for i := range file.Regimes {
		def := file.Regimes[i]
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if def.DeductionCaps == nil {
			def.DeductionCaps = map[domain.Section]*decimal.Decimal{}
		}
		year := r.byYear[def.AssessmentYear]
		if year == nil {
			year = make(map[domain.RegimeID]*domain.RegimeDefinition)
			r.byYear[def.AssessmentYear] = year
		}
		if _, dup := year[def.ID]; dup {
			return nil, &domain.MalformedRegimeDefinitionError{
				Regime:         def.ID,
				AssessmentYear: def.AssessmentYear,
				Reason:         "defined more than once",
			}
		}
		year[def.ID] = &def
	}
	return r, nil
}

// Get returns the definition for a regime in an assessment year
func (r *Registry) Get(id domain.RegimeID, assessmentYear string) (*domain.RegimeDefinition, error) {
	year, ok := r.byYear[assessmentYear]
	if !ok {
		return nil, &domain.UnknownAssessmentYearError{AssessmentYear: assessmentYear}
	}
	def, ok := year[id]
	if !ok {
		return nil, &domain.UnknownRegimeError{Regime: id, AssessmentYear: assessmentYear}
	}
	return def, nil
}

// Pair returns the old and new regime definitions for an assessment year
func (r *Registry) Pair(assessmentYear string) (oldRegime, newRegime *domain.RegimeDefinition, err error) {
	if oldRegime, err = r.Get(domain.RegimeOld, assessmentYear); err != nil {
		return nil, nil, err
	}
	if newRegime, err = r.Get(domain.RegimeNew, assessmentYear); err != nil {
		return nil, nil, err
	}
	return oldRegime, newRegime, nil
}

// AssessmentYears lists the registered years in ascending order
func (r *Registry) AssessmentYears() []string {
	years := make([]string, 0, len(r.byYear))
	for year := range r.byYear {
		years = append(years, year)
	}
	sort.Strings(years)
	return years
}

// Regimes lists the definitions registered for a year, old before new
func (r *Registry) Regimes(assessmentYear string) ([]*domain.RegimeDefinition, error) {
	year, ok := r.byYear[assessmentYear]
	if !ok {
		return nil, &domain.UnknownAssessmentYearError{AssessmentYear: assessmentYear}
	}
	defs := make([]*domain.RegimeDefinition, 0, len(year))
	for _, def := range year {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID > defs[j].ID })
	return defs, nil
}

// Latest returns the most recent registered assessment year
func (r *Registry) Latest() string {
	years := r.AssessmentYears()
	return years[len(years)-1]
}
