package entities

import (
	"strings"
	"time"

	"qutlas/pkg/errs"

	"github.com/shopspring/decimal"
)

// paymentTolerance is the largest accepted gap between a paid amount and the
// quote total.
var paymentTolerance = decimal.RequireFromString("0.01")

// FindEvent returns the ledger entry for a reference.
func (p JobPayment) FindEvent(reference string) (PaymentEventRecord, bool) {
	for _, ev := range p.Events {
		if ev.Reference == reference {
			return ev, true
		}
	}
	return PaymentEventRecord{}, false
}

// AmountMatches compares two currency amounts after rounding both to cents.
func AmountMatches(paid, expected float64) bool {
	diff := decimal.NewFromFloat(paid).Round(2).Sub(decimal.NewFromFloat(expected).Round(2)).Abs()
	return diff.LessThanOrEqual(paymentTolerance)
}

// ApplyPayment folds a gateway event into the job.
//
// It returns changed=false when the event was already applied with the same
// status; the job is then untouched. Any error also leaves the job
// untouched.
func (j *Job) ApplyPayment(ev PaymentEvent, at time.Time) (changed bool, err error) {
	if err := ev.Validate(); err != nil {
		return false, err
	}
	at = at.UTC()

	if prev, seen := j.Payment.FindEvent(ev.Reference); seen {
		if prev.Status == ev.Status {
			return false, nil
		}
		if prev.Status.IsTerminal() {
			return false, errs.Markf(errs.ErrPaymentConflict,
				"job %s: reference %s already committed as %s, gateway now reports %s",
				j.ID, ev.Reference, prev.Status, ev.Status)
		}
	}

	switch ev.Status {
	case PaymentEventSuccessful:
		if j.Quote == nil {
			return false, errs.Markf(errs.ErrPaymentMismatch, "job %s has no quote to reconcile against", j.ID)
		}
		if !AmountMatches(ev.Amount, j.Quote.TotalPrice) {
			return false, errs.Markf(errs.ErrPaymentMismatch,
				"job %s: paid %.2f, quote total %.2f", j.ID, ev.Amount, j.Quote.TotalPrice)
		}
		if ev.Currency != "" && !strings.EqualFold(ev.Currency, j.Quote.Currency) {
			return false, errs.Markf(errs.ErrPaymentMismatch,
				"job %s: paid in %s, quote in %s", j.ID, ev.Currency, j.Quote.Currency)
		}
		if err := j.Transition(JobStatusPaid, "payment verified ref="+ev.Reference, at); err != nil {
			return false, err
		}
		verifiedAt := at
		j.Payment.Status = JobPaymentCompleted
		j.Payment.Reference = ev.Reference
		j.Payment.TransactionID = ev.TransactionID
		j.Payment.Amount = ev.Amount
		j.Payment.Currency = j.Quote.Currency
		j.Payment.VerifiedAt = &verifiedAt
	case PaymentEventFailed:
		if j.Payment.Status != JobPaymentCompleted {
			j.Payment.Status = JobPaymentFailed
			j.Payment.Reference = ev.Reference
			j.Payment.TransactionID = ev.TransactionID
		}
	case PaymentEventPending:
		if j.Payment.Status != JobPaymentCompleted {
			j.Payment.Status = JobPaymentPending
			j.Payment.Reference = ev.Reference
			j.Payment.TransactionID = ev.TransactionID
		}
	}

	j.recordPaymentEvent(PaymentEventRecord{
		Reference:     ev.Reference,
		TransactionID: ev.TransactionID,
		Status:        ev.Status,
		Amount:        ev.Amount,
		Currency:      ev.Currency,
		AppliedAt:     at,
	})
	j.UpdatedAt = at
	return true, nil
}

func (j *Job) recordPaymentEvent(rec PaymentEventRecord) {
	for i := range j.Payment.Events {
		if j.Payment.Events[i].Reference == rec.Reference {
			j.Payment.Events[i] = rec
			return
		}
	}
	j.Payment.Events = append(j.Payment.Events, rec)
}
