package metrics

import (
	"time"

	apperrors "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/errors"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// AuthMetric captures one auth operation for metric emission.
type AuthMetric struct {
	Operation string
	Duration  time.Duration
	Err       error
}

// EmitAuthOperation emits the auth.operation counter and auth.duration timing.
// Failures are tagged with the application error code.
func EmitAuthOperation(sink statsd.Sink, in AuthMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"operation": in.Operation,
		"result":    ResultSuccess,
	}
	if in.Err != nil {
		tags["result"] = ResultError
		code := string(apperrors.GetCode(in.Err))
		if code == "" {
			code = "unknown"
		}
		tags["error_code"] = code
	}

	sink.Count("auth.operation", 1, tags)

	if in.Duration > 0 {
		sink.Timing("auth.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
