// Package logging provides the structured logging interface used by rangeprod.
// Components depend on Logger; the zerolog-backed adapter is the default
// implementation and a standard-library adapter is kept for callers that
// already hold a *log.Logger.
package logging
