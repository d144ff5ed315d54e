// Package diag centralises the core's two panic-worthy precondition checks
// and its optional, discard-by-default statistics logging.
//
// Nothing in this package participates in control flow for degenerate
// geometry or rejected mutations — those are expressed as sentinel return
// values at the call site, never here. Require is reserved for programming
// errors: construction arguments that have no valid recovery.
package diag

import (
	"io"
	"log"
)

// Logger receives optional statistics (quadtree splits, Z-order resorts,
// hierarchical region reclassification) from the spatial indices. It is
// silent by default; callers that want visibility set it once at startup.
var Logger = log.New(io.Discard, "", 0)

// Require panics with msg if cond is false. Used exclusively for
// programming errors — invalid construction parameters — never for
// degenerate geometric input or rejected mutations, both of which have
// well-defined sentinel behaviour instead.
func Require(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
