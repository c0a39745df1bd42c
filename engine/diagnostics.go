package engine

import (
	"log"

	"github.com/google/uuid"

	"github.com/csvengine/csvq/config"
	"github.com/csvengine/csvq/router"
)

// logSetup mints a QueryID and logs the setup decisions the Strategy
// Router and Hardware Tag Detector made for this query, at the
// verbosity stdlib log provides. Row-level skips are never logged
// here — only the engine's own predicate evaluation and field
// scanner see those, and they are skipped silently, neither counted
// nor logged.
func logSetup(strategy router.Strategy, workers int, cfg config.Resolved) uuid.UUID {
	id := uuid.New()
	log.Printf("csvq query=%s strategy=%s workers=%d hwtag=%s heapMaxK=%d radixMinN=%d",
		id, strategy, workers, cfg.Tag, cfg.HeapMaxK, cfg.RadixMinN)
	return id
}

// logGroupByDiagnostics logs the Group-By Stub's single-pass
// cardinality estimate for source immediately before the query is
// refused as not_implemented.
func logGroupByDiagnostics(source string, distinctGroups int) uuid.UUID {
	id := uuid.New()
	log.Printf("csvq query=%s source=%s groupby_distinct=%d not_implemented",
		id, source, distinctGroups)
	return id
}
