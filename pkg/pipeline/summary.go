// pkg/pipeline/summary.go

package pipeline

import (
	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
)

// Summary aggregates every terminal JobResult of a run. Warned counts
// jobs that reached Done with warnings attached; Failed counts aborts.
type Summary struct {
	Results   []JobResult
	Processed int
	Succeeded int
	Warned    int
	Failed    int
}

func (s *Summary) add(res JobResult) {
	s.Results = append(s.Results, res)
	s.Processed++
	switch {
	case res.State == StateDone && len(res.Warnings) == 0:
		s.Succeeded++
	case res.State == StateDone:
		s.Warned++
	default:
		s.Failed++
	}
}

// Err returns the aggregated fatal failures, or nil when every target
// reached Done.
func (s *Summary) Err() error {
	var result *multierror.Error
	for _, res := range s.Results {
		if res.State == StateDone {
			continue
		}
		err := res.Err
		if err == nil {
			err = cerr.New("aborted")
		}
		result = multierror.Append(result, cerr.Wrapf(err, "%s", res.Path))
	}
	return result.ErrorOrNil()
}
