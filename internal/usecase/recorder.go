package usecase

import "time"

// Recorder receives counters from the engine and the chat service.
// The prometheus implementation lives in infrastructure/metrics.
type Recorder interface {
	Extraction(action string)
	Resolution(tier string)
	CatalogFetch(result string)
	ChatDuration(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Extraction(string)          {}
func (nopRecorder) Resolution(string)          {}
func (nopRecorder) CatalogFetch(string)        {}
func (nopRecorder) ChatDuration(time.Duration) {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
