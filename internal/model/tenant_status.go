package model

import (
	"context"
	"errors"

	"github.com/looplab/fsm"

	"github.com/portfoliopro/folio/internal/errs"
)

var ErrInvalidStatusTransition = errors.New("tenant status transition is not valid")

// TenantStatus is the lifecycle state derived from the Active and Banned
// flags. It is never stored directly; the flags are the source of truth.
type TenantStatus string

const (
	StatusActive      TenantStatus = "ACTIVE"
	StatusBanned      TenantStatus = "BANNED"
	StatusDeactivated TenantStatus = "DEACTIVATED"
)

func (s TenantStatus) String() string { return string(s) }

// StatusTransition names an event on the tenant lifecycle state machine.
type StatusTransition string

const (
	TransitionBan        StatusTransition = "ban"
	TransitionUnban      StatusTransition = "unban"
	TransitionDeactivate StatusTransition = "deactivate"
	TransitionReactivate StatusTransition = "reactivate"
)

func (t StatusTransition) String() string { return string(t) }

func newStatusMachine(current TenantStatus) *fsm.FSM {
	return fsm.NewFSM(
		current.String(),
		fsm.Events{
			{
				Name: TransitionBan.String(),
				Src:  []string{StatusActive.String(), StatusDeactivated.String()},
				Dst:  StatusBanned.String(),
			},
			{
				Name: TransitionUnban.String(),
				Src:  []string{StatusBanned.String()},
				Dst:  StatusActive.String(),
			},
			{
				Name: TransitionDeactivate.String(),
				Src:  []string{StatusActive.String()},
				Dst:  StatusDeactivated.String(),
			},
			{
				Name: TransitionReactivate.String(),
				Src:  []string{StatusDeactivated.String()},
				Dst:  StatusActive.String(),
			},
		},
		fsm.Callbacks{},
	)
}

// Status derives the lifecycle state from the flags. Banned wins over
// deactivated so a banned tenant stays banned until explicitly unbanned.
func (t *Tenant) Status() TenantStatus {
	switch {
	case t.Banned:
		return StatusBanned
	case !t.Active:
		return StatusDeactivated
	default:
		return StatusActive
	}
}

// CanTransition reports whether the transition is allowed from the
// current state without applying it.
func (t *Tenant) CanTransition(transition StatusTransition) bool {
	return newStatusMachine(t.Status()).Can(transition.String())
}

// ApplyTransition runs the transition on the state machine and maps the
// resulting state back onto the flags. The caller persists the tenant.
func (t *Tenant) ApplyTransition(ctx context.Context, transition StatusTransition) error {
	machine := newStatusMachine(t.Status())

	err := machine.Event(ctx, transition.String())
	if err != nil {
		return errs.Wrap(ErrInvalidStatusTransition, err)
	}

	switch TenantStatus(machine.Current()) {
	case StatusActive:
		t.Active = true
		t.Banned = false
	case StatusBanned:
		t.Banned = true
	case StatusDeactivated:
		t.Active = false
		t.Banned = false
	}

	return nil
}
