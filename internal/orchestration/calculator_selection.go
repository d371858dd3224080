package orchestration

import "github.com/agbru/rangeprod/internal/product"

// GetCalculatorsToRun resolves algo to calculators. "all" yields every
// registered calculator in name order; an unknown name yields nil.
func GetCalculatorsToRun(algo string, factory product.CalculatorFactory) []product.Calculator {
	if algo != "all" {
		if calc, err := factory.Get(algo); err == nil {
			return []product.Calculator{calc}
		}
		return nil
	}
	names := factory.List()
	calculators := make([]product.Calculator, 0, len(names))
	for _, name := range names {
		if calc, err := factory.Get(name); err == nil {
			calculators = append(calculators, calc)
		}
	}
	return calculators
}
