package scoring

// Component names, also used as keys in the scoring breakdown map.
const (
	ComponentMarket            = "market"
	ComponentRating            = "rating"
	ComponentForm              = "form"
	ComponentSuitability       = "suitability"
	ComponentFreshness         = "freshness"
	ComponentCDProfile         = "cd_profile"
	ComponentConnections       = "connections"
	ComponentMarketExpectation = "market_expectation"
)

// componentScorer maps one runner (by index into the race context) to an
// optional 0-100 score and a human-readable reason. A nil score means the
// component had no data; it must never fabricate a default instead.
type componentScorer func(rc *raceContext, idx int) (*float64, string)

// component pairs a scorer with its name and configured base weight.
type component struct {
	name   string
	weight float64
	score  componentScorer
}

// buildRegistry returns the fixed, ordered component list. The order is part
// of the output contract: breakdowns and payloads list components this way.
func (e *Engine) buildRegistry() []component {
	w := e.cfg.Weights
	return []component{
		{ComponentMarket, w.Market, e.scoreMarket},
		{ComponentRating, w.Rating, e.scoreRating},
		{ComponentForm, w.Form, e.scoreForm},
		{ComponentSuitability, w.Suitability, e.scoreSuitability},
		{ComponentFreshness, w.Freshness, e.scoreFreshness},
		{ComponentCDProfile, w.CDProfile, e.scoreCDProfile},
		{ComponentConnections, w.Connections, e.scoreConnections},
		{ComponentMarketExpectation, w.MarketExpectation, e.scoreMarketExpectation},
	}
}

// ComponentNames returns the component names in registry order.
func (e *Engine) ComponentNames() []string {
	names := make([]string, 0, len(e.registry))
	for _, c := range e.registry {
		names = append(names, c.name)
	}
	return names
}
