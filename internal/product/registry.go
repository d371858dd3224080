package product

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/rangeprod/internal/logging"
	"github.com/agbru/rangeprod/internal/progress"
)

// DefaultCalculator is the calculator run when none is selected.
const DefaultCalculator = "parallel"

// creatorFunc builds a core calculator bound to logger.
type creatorFunc func(logger logging.Logger) coreCalculator

var (
	extraMu       sync.Mutex
	extraCreators = map[string]creatorFunc{}
)

// registerCalculator makes an additional calculator available to every
// factory created afterwards. It is called from init functions of
// build-tagged implementations.
func registerCalculator(name string, creator creatorFunc) error {
	if name == "" || creator == nil {
		return fmt.Errorf("product: invalid calculator registration %q", name)
	}
	extraMu.Lock()
	defer extraMu.Unlock()
	extraCreators[name] = creator
	return nil
}

// CalculatorFactory hands out calculators by name.
type CalculatorFactory interface {
	Get(name string) (Calculator, error)
	List() []string
	GetAll() map[string]Calculator
}

// DefaultFactory is a thread-safe CalculatorFactory caching one instance per
// name.
type DefaultFactory struct {
	mu          sync.RWMutex
	logger      logging.Logger
	observers   []progress.ProgressObserver
	creators    map[string]creatorFunc
	calculators map[string]Calculator
}

// FactoryOption configures a DefaultFactory.
type FactoryOption func(*DefaultFactory)

// WithFactoryLogger sets the logger handed to every calculator.
func WithFactoryLogger(l logging.Logger) FactoryOption {
	return func(f *DefaultFactory) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithFactoryObservers registers observers on every calculator the factory
// creates.
func WithFactoryObservers(obs ...progress.ProgressObserver) FactoryOption {
	return func(f *DefaultFactory) { f.observers = append(f.observers, obs...) }
}

// NewDefaultFactory returns a factory with the built-in calculators
// ("parallel", "sequential", "exact") and any registered extras.
func NewDefaultFactory(opts ...FactoryOption) *DefaultFactory {
	f := &DefaultFactory{
		logger:      logging.NewNopLogger(),
		creators:    make(map[string]creatorFunc),
		calculators: make(map[string]Calculator),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.creators["parallel"] = func(l logging.Logger) coreCalculator { return &parallelCalculator{logger: l} }
	f.creators["sequential"] = func(logging.Logger) coreCalculator { return &sequentialCalculator{} }
	f.creators["exact"] = func(l logging.Logger) coreCalculator { return &exactCalculator{logger: l} }

	extraMu.Lock()
	for name, c := range extraCreators {
		f.creators[name] = c
	}
	extraMu.Unlock()
	return f
}

// Get returns the cached calculator for name, creating it on first use.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	if calc, ok := f.calculators[name]; ok {
		f.mu.RUnlock()
		return calc, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if calc, ok := f.calculators[name]; ok {
		return calc, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown calculator: %s", name)
	}
	calc := NewCalculatorWithObservers(creator(f.logger), f.logger, f.observers...)
	f.calculators[name] = calc
	return calc, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every registered calculator, keyed by name.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, creator := range f.creators {
		if _, ok := f.calculators[name]; !ok {
			f.calculators[name] = NewCalculatorWithObservers(creator(f.logger), f.logger, f.observers...)
		}
	}
	all := make(map[string]Calculator, len(f.calculators))
	for name, calc := range f.calculators {
		all[name] = calc
	}
	return all
}
