package entity

import (
	accountentity "github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"
)

// BookingStatus is the lifecycle state of one booking.
type BookingStatus string

const (
	StatusPending         BookingStatus = "PENDING"
	StatusAwaitingPayment BookingStatus = "AWAITING_PAYMENT"
	StatusPaid            BookingStatus = "PAID"
	StatusCancelled       BookingStatus = "CANCELLED"
	StatusAbsent          BookingStatus = "ABSENT"
)

// validTransitions defines the booking state machine. PAID, CANCELLED and
// ABSENT are terminal. ABSENT is the operator marking a no-show on a booking
// that never reached a terminal state.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:         {StatusAwaitingPayment, StatusPaid, StatusCancelled, StatusAbsent},
	StatusAwaitingPayment: {StatusPaid, StatusCancelled, StatusAbsent},
	StatusPaid:            {},
	StatusCancelled:       {},
	StatusAbsent:          {},
}

// operatorTargets and athleteTargets restrict which transitions each actor
// kind may trigger; everything else is reserved for system collaborators
// (the payment provider flipping PENDING to AWAITING_PAYMENT).
var operatorTargets = map[BookingStatus]bool{
	StatusPaid:      true,
	StatusAbsent:    true,
	StatusCancelled: true,
}

var athleteTargets = map[BookingStatus]bool{
	StatusCancelled: true,
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// IsTerminal returns true if no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// CanTransitionTo returns true if a transition from this status to the
// target is allowed by the state machine, regardless of actor.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// ActorMayTrigger reports whether the given actor kind is permitted to
// request the target status at all. The state-machine check is separate.
func ActorMayTrigger(role accountentity.Role, target BookingStatus) bool {
	switch role {
	case accountentity.RoleOperator:
		return operatorTargets[target]
	case accountentity.RoleAthlete:
		return athleteTargets[target]
	default:
		return false
	}
}
