package validation

import (
	"context"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
)

// MessageKey identifies one human-readable diagnostic line. The wording lives
// with the Reporter implementation.
type MessageKey string

const (
	MsgTransferInitiated     MessageKey = "transfer_initiated" // sender, receiver
	MsgRequisitesChecking    MessageKey = "requisites_checking"
	MsgRequisitesInvalid     MessageKey = "requisites_invalid"
	MsgFundsChecking         MessageKey = "funds_checking"
	MsgFundsInsufficient     MessageKey = "funds_insufficient"
	MsgBaseDone              MessageKey = "base_done"
	MsgMonitoringStarted     MessageKey = "monitoring_started"
	MsgMonitoringFlagged     MessageKey = "monitoring_flagged"
	MsgMonitoringDone        MessageKey = "monitoring_done" // threshold
	MsgMonitoringUnavailable MessageKey = "monitoring_unavailable"
	MsgHistoryChecking       MessageKey = "history_checking"
	MsgHistoryOK             MessageKey = "history_ok"
	MsgSuspiciousDetected    MessageKey = "suspicious_detected"
	MsgHistoryUnavailable    MessageKey = "history_unavailable"
	MsgSuspiciousDone        MessageKey = "suspicious_done"
	MsgCommentChecking       MessageKey = "comment_checking"
	MsgCommentAbsent         MessageKey = "comment_absent"
	MsgCommentPresent        MessageKey = "comment_present"
	MsgTransactionSucceeded  MessageKey = "transaction_succeeded"
)

// Reporter is the outbound port for operator-facing diagnostics.
type Reporter interface {
	Report(ctx context.Context, key MessageKey, args ...any)
}

// Pacer spaces diagnostic lines out. It carries no semantics and must not fail.
type Pacer interface {
	Pace(ctx context.Context)
}

// Predicate is a pluggable yes/no check over a payment. Implementations must be
// free of hidden state so repeated calls agree.
type Predicate func(ctx context.Context, p *dompay.Payment) bool

// Monitor screens high-value payments for financial monitoring. An error means
// the screening did not happen and says nothing about the payment.
type Monitor interface {
	Screen(ctx context.Context, p *dompay.Payment) (bool, error)
}

// HistoryProvider answers how long ago the sender last paid.
type HistoryProvider interface {
	DaysSinceLastPayment(ctx context.Context, sender string) (int, error)
}

type IDGenerator interface {
	NewID() string
}

// AlwaysTrue is the stand-in for the requisites and funds checks.
func AlwaysTrue(context.Context, *dompay.Payment) bool { return true }

// StaticHistory reports the same age for every sender.
type StaticHistory int

func (s StaticHistory) DaysSinceLastPayment(context.Context, string) (int, error) {
	return int(s), nil
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, MessageKey, ...any) {}

func NopReporter() Reporter { return nopReporter{} }

type nopPacer struct{}

func (nopPacer) Pace(context.Context) {}

func NopPacer() Pacer { return nopPacer{} }
