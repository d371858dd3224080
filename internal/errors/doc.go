// Package apperrors defines the structured error types and exit codes shared
// by the rangeprod packages. Input problems (configuration, malformed numbers,
// invalid thread counts) are reported as ConfigError or ValidationError before
// any worker starts; failures during a computation are wrapped in
// CalculationError so the cause stays reachable through errors.Is/errors.As.
package apperrors
