package search

// Strategy identifies the retrieval path that produced a result set.
type Strategy string

// Retrieval strategies.
const (
	StrategyFullText  Strategy = "fulltext"
	StrategySubstring Strategy = "substring"
	StrategyKeyword   Strategy = "keyword"
	StrategySemantic  Strategy = "semantic"
	StrategyHybrid    Strategy = "hybrid"
	StrategyTrending  Strategy = "trending"
)

// Outcome reports how a retrieval call concluded. The external contract
// collapses store failures to an empty result list; Degraded lets callers
// and tests tell "zero real matches" from "upstream failure, degraded".
type Outcome struct {
	Strategy Strategy
	Degraded bool
}

// Label returns the outcome as a metrics label value.
func (o Outcome) Label() string {
	if o.Degraded {
		return "degraded"
	}
	return "ok"
}
