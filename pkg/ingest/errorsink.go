package ingest

import (
	"sync"

	"github.com/openf1db/openf1-ingest-go/log"
)

const verboseErrorLimit = 3

// errorSink collects per record validation failures without flooding the
// log. The first verboseErrorLimit errors are logged with full detail,
// the next one announces the suppression, everything after that is only
// counted. Safe for concurrent use (telemetry fan-out).
type errorSink struct {
	mu         sync.Mutex
	log        *log.Logger
	collection string
	count      int
}

func newErrorSink(logger *log.Logger, collection string) *errorSink {
	return &errorSink{log: logger, collection: collection}
}

func (s *errorSink) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	switch {
	case s.count <= verboseErrorLimit:
		s.log.Warn("skipping invalid record",
			log.String("collection", s.collection),
			log.ErrorField(err))
	case s.count == verboseErrorLimit+1:
		s.log.Warn("more invalid records, suppressing further messages",
			log.String("collection", s.collection))
	}
}

func (s *errorSink) errors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
