// Package refdata loads reference data (the country list and per-country
// education frameworks) from the hosted backend, serving fresh entries
// from a TTL cache whenever possible. The FrameworkWatcher additionally
// guarantees last-request-wins semantics when the selected country changes
// faster than requests complete: a response whose originating selection
// has been superseded is discarded without touching state.
package refdata
