package observability

const (
	MUsecaseRequests    MetricKey = "usecase_requests_total"
	MUsecaseDuration    MetricKey = "usecase_duration_seconds"
	MStageInvocations   MetricKey = "payment_stage_invocations_total"
	MCheckDecisions     MetricKey = "payment_check_decisions_total"
	MTraversalsComplete MetricKey = "payment_traversals_completed_total"
)
