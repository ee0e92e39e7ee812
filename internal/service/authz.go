package service

import (
	"registrar-portal-backend/internal/domain"
)

// Authorize is the single policy consulted before every workflow transition:
// actor role × capability flags × department scope against the target
// transaction's department. It never touches the store.
func Authorize(actor *domain.Actor, ev domain.TransitionEvent, txn *domain.Transaction) error {
	if actor == nil || !actor.Active {
		return domain.ErrUnauthorized
	}

	switch actor.Role {
	case domain.ActorRoleAdmin:
		return nil

	case domain.ActorRoleStaff:
		if ev == domain.EventMarkReady {
			// Compiling credentials is releasing-assistant work.
			return domain.ErrUnauthorized
		}
		if !actor.InScope(txn.DepartmentID) {
			return domain.ErrUnauthorized
		}
		return nil

	case domain.ActorRoleStudentAssistant:
		switch ev {
		case domain.EventSchedule:
			if !actor.CanSchedule {
				return domain.ErrUnauthorized
			}
		case domain.EventMarkReady, domain.EventClaim:
			if !actor.CanRelease {
				return domain.ErrUnauthorized
			}
		case domain.EventReject:
			// Any assistant may reject within scope.
		default:
			// Payment recording stays with staff and admins.
			return domain.ErrUnauthorized
		}
		if !actor.InScope(txn.DepartmentID) {
			return domain.ErrUnauthorized
		}
		return nil

	default:
		// Students submit requests; they never drive transitions.
		return domain.ErrUnauthorized
	}
}
