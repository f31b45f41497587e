package telemetry

import (
	"fmt"
)

// API is the logging/metrics surface every collector component reports through.
// Components never call slog directly so that tests can assert on what was reported.
//
// note: fault injection point
type API interface {
	// ReportBroken reports a component that failed in a way an operator should look at.
	//
	// `id` names the component and method that broke, not the specific line.
	// ex. a failed navigation inside the sg200 client's FetchMacTable is reported
	// as `client.fetch-mac-table`, with the cause given as a param.
	//
	// Formatting rules:
	// 1) all lowercase
	// 2) underscores for large components
	// 3) dashes for methods of a component
	ReportBroken(id string, params ...any)

	// ReportWarning reports something unexpected that did not stop the operation,
	// for example a device that served a page we had to fall back on.
	ReportWarning(id string, params ...any)

	// ReportDebug reports information only useful while developing against a device.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current count of an event, as a point in time.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id it reports with a namespace.
type ScopedAPI struct {
	namespace string
	inner     API
}

// NewScopedAPI wraps inner so that ids become "<namespace>:<id>".
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s:%s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s:%s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s:%s", s.namespace, id), count)
}

// NoopAPI discards everything.
type NoopAPI struct{}

func (NoopAPI) ReportBroken(string, ...any)  {}
func (NoopAPI) ReportWarning(string, ...any) {}
func (NoopAPI) ReportDebug(string, ...any)   {}
func (NoopAPI) ReportCount(string, int64)    {}
