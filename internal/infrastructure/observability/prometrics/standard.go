package prometrics

import "github.com/Zhima-Mochi/paychain/internal/observability"

// Standard registers every instrument the validation pipeline records into.
func Standard(r Registry) (map[observability.MetricKey]observability.Counter, map[observability.MetricKey]observability.Histogram) {
	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: r.Counter(string(observability.MUsecaseRequests),
			"Total number of use case invocations.", "use_case", "outcome"),
		observability.MStageInvocations: r.Counter(string(observability.MStageInvocations),
			"Number of times each chain stage handled a payment.", "handler"),
		observability.MCheckDecisions: r.Counter(string(observability.MCheckDecisions),
			"Advisory check outcomes by check and verdict.", "check", "verdict"),
		observability.MTraversalsComplete: r.Counter(string(observability.MTraversalsComplete),
			"Traversals that reached the tail of the chain.", "tail"),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: r.Histogram(string(observability.MUsecaseDuration),
			"Duration of use case execution in seconds.", nil, "use_case"),
	}
	return counters, histograms
}
