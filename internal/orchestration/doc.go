// Package orchestration runs one or more range product calculators
// concurrently, collects their results and cross-checks them. Presentation
// is reached only through the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
