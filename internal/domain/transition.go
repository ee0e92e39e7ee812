package domain

type TransitionEvent string

const (
	EventRecordPayment TransitionEvent = "RECORD_PAYMENT"
	EventSchedule      TransitionEvent = "SCHEDULE"
	EventMarkReady     TransitionEvent = "MARK_READY"
	EventClaim         TransitionEvent = "CLAIM"
	EventReject        TransitionEvent = "REJECT"
)

// transitionTable lists, per event, the statuses the transaction must be in
// for the event to apply and the status it lands in. RecordPayment is a
// field-only update and leaves the status untouched. Reject is valid from
// every non-terminal state; Claim deliberately accepts both Scheduled and
// Ready.
var transitionTable = map[TransitionEvent]struct {
	From []TransactionStatus
	To   TransactionStatus
}{
	EventRecordPayment: {
		From: []TransactionStatus{TransactionStatusSubmitted},
		To:   TransactionStatusSubmitted,
	},
	EventSchedule: {
		From: []TransactionStatus{TransactionStatusSubmitted},
		To:   TransactionStatusScheduled,
	},
	EventMarkReady: {
		From: []TransactionStatus{TransactionStatusScheduled},
		To:   TransactionStatusReady,
	},
	EventClaim: {
		From: []TransactionStatus{TransactionStatusScheduled, TransactionStatusReady},
		To:   TransactionStatusClaimed,
	},
	EventReject: {
		From: []TransactionStatus{TransactionStatusSubmitted, TransactionStatusScheduled, TransactionStatusReady},
		To:   TransactionStatusRejected,
	},
}

// PredecessorStatuses returns the statuses from which ev may fire.
func PredecessorStatuses(ev TransitionEvent) []TransactionStatus {
	return transitionTable[ev].From
}

// TargetStatus returns the status ev lands in.
func TargetStatus(ev TransitionEvent) TransactionStatus {
	return transitionTable[ev].To
}

// CanTransition reports whether ev may fire from the given status.
func CanTransition(from TransactionStatus, ev TransitionEvent) bool {
	rule, ok := transitionTable[ev]
	if !ok {
		return false
	}
	for _, s := range rule.From {
		if s == from {
			return true
		}
	}
	return false
}
