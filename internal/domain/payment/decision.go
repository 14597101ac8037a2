package payment

type Verdict string

const (
	VerdictApproved Verdict = "approved"
	VerdictFlagged  Verdict = "flagged"
	VerdictSkipped  Verdict = "skipped"
)

const (
	CheckRequisites          = "requisites"
	CheckFunds               = "funds"
	CheckFinancialMonitoring = "financial_monitoring"
	CheckRecentActivity      = "recent_activity"
	CheckComment             = "comment"
)

// Decision is the typed outcome of a single check. Decisions are advisory:
// none of them changes whether or where a payment is forwarded.
type Decision struct {
	Check   string
	Verdict Verdict
	Reason  string
}

func Approved(check string) Decision {
	return Decision{Check: check, Verdict: VerdictApproved}
}

func Flagged(check, reason string) Decision {
	return Decision{Check: check, Verdict: VerdictFlagged, Reason: reason}
}

func Skipped(check, reason string) Decision {
	return Decision{Check: check, Verdict: VerdictSkipped, Reason: reason}
}

// DecisionOf maps a boolean check result onto a verdict.
func DecisionOf(check string, ok bool, failureReason string) Decision {
	if ok {
		return Approved(check)
	}
	return Flagged(check, failureReason)
}

func (d Decision) IsFlagged() bool { return d.Verdict == VerdictFlagged }
