package recorder

import "CoinbasePremium/internal/model"

// Recorder keeps a journal of runs for later analysis. The JSON document
// only holds the rolling window; the journal keeps everything.
type Recorder interface {
	RecordRun(summary *model.RunSummary) error
	RecordPremium(runID string, point model.PremiumPoint) error
	Close() error
}
