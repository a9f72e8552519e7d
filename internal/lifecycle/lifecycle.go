// Package lifecycle is the listing moderation state machine.
//
// Apply is pure: it takes the current listing, the requested action, who is
// asking, a policy snapshot and the clock, and returns either a Diff describing
// every column to write or an *models.AppError. Nothing is persisted here.
package lifecycle

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
)

// Action is a requested lifecycle operation.
type Action string

const (
	ActionSubmit    Action = "submit"
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionToggle    Action = "toggle"
	ActionPause     Action = "pause"
	ActionResume    Action = "resume"
	ActionUnpublish Action = "unpublish"
)

// Actor identifies who requests the transition.
type Actor struct {
	UserID uint
	Admin  bool
}

// Policy is an immutable snapshot of the admin moderation settings.
type Policy struct {
	RequireSubmitToPublish   bool
	AllowAdminPause          bool
	AllowAdminReject         bool
	AllowAdminUnpublish      bool
	MinRejectionReasonLength int
}

// PolicyFrom copies the moderation settings into a Policy.
func PolicyFrom(s models.ModerationSettings) Policy {
	return Policy{
		RequireSubmitToPublish:   s.RequireSubmitToPublish,
		AllowAdminPause:          s.AllowAdminPause,
		AllowAdminReject:         s.AllowAdminReject,
		AllowAdminUnpublish:      s.AllowAdminUnpublish,
		MinRejectionReasonLength: s.MinRejectionReasonLength,
	}
}

// DefaultPolicy matches models.DefaultAdminSettings.
func DefaultPolicy() Policy {
	return PolicyFrom(models.DefaultAdminSettings().Moderation)
}

// Request is one transition attempt.
type Request struct {
	Action Action
	Actor  Actor
	// Reason is only read for ActionReject.
	Reason string
}

// TimeOp describes what happens to a nullable timestamp column.
type TimeOp int

const (
	Keep TimeOp = iota
	Set
	Clear
)

// Diff is the complete set of changes a transition makes.
type Diff struct {
	Action Action
	From   models.ListingStatus
	To     models.ListingStatus

	SubmittedAt TimeOp
	ApprovedAt  TimeOp
	RejectedAt  TimeOp
	PausedAt    TimeOp

	// Reason is written when ReasonSet; cleared when ReasonClear.
	Reason      string
	ReasonSet   bool
	ReasonClear bool

	At time.Time
}

// Apply validates req against the listing and policy and returns the resulting diff.
func Apply(l models.Listing, req Request, policy Policy, now time.Time) (Diff, error) {
	action := req.Action
	if action == ActionToggle {
		switch l.Status {
		case models.StatusLive:
			action = ActionPause
		case models.StatusPaused:
			action = ActionResume
		default:
			return Diff{}, models.NewInvalidTransitionError(l.Status, models.StatusPaused)
		}
	}

	d := Diff{Action: action, From: l.Status, At: now}

	switch action {
	case ActionSubmit:
		if !l.IsOwnedBy(req.Actor.UserID) {
			return Diff{}, models.NewForbiddenError("only the owning host can submit a listing")
		}
		if l.Status != models.StatusDraft && l.Status != models.StatusRejected {
			return Diff{}, models.NewInvalidTransitionError(l.Status, models.StatusPending)
		}
		d.To = models.StatusPending
		d.SubmittedAt = Set
		d.RejectedAt = Clear
		d.ReasonClear = true

	case ActionApprove:
		if !req.Actor.Admin {
			return Diff{}, models.NewForbiddenError("admin role required")
		}
		resumable := l.Status == models.StatusPaused && !policy.RequireSubmitToPublish
		if l.Status != models.StatusPending && !resumable {
			return Diff{}, models.NewInvalidTransitionError(l.Status, models.StatusLive)
		}
		d.To = models.StatusLive
		d.ApprovedAt = Set
		d.RejectedAt = Clear
		d.PausedAt = Clear
		d.ReasonClear = true

	case ActionReject:
		if !req.Actor.Admin {
			return Diff{}, models.NewForbiddenError("admin role required")
		}
		if !policy.AllowAdminReject {
			return Diff{}, models.NewPolicyBlockedError(l.Status, models.StatusRejected, "allowAdminReject")
		}
		if l.Status != models.StatusPending {
			return Diff{}, models.NewInvalidTransitionError(l.Status, models.StatusRejected)
		}
		reason, err := CleanReason(req.Reason, policy.MinRejectionReasonLength)
		if err != nil {
			return Diff{}, err
		}
		d.To = models.StatusRejected
		d.RejectedAt = Set
		d.ApprovedAt = Clear
		d.Reason = reason
		d.ReasonSet = true

	case ActionPause, ActionResume:
		if err := checkToggleActor(l, req.Actor, policy); err != nil {
			return Diff{}, err
		}
		if action == ActionPause {
			if l.Status != models.StatusLive {
				return Diff{}, models.NewInvalidTransitionError(l.Status, models.StatusPaused)
			}
			d.To = models.StatusPaused
			d.PausedAt = Set
			d.ApprovedAt = Clear
		} else {
			if l.Status != models.StatusPaused {
				return Diff{}, models.NewInvalidTransitionError(l.Status, models.StatusLive)
			}
			d.To = models.StatusLive
			d.ApprovedAt = Set
			d.PausedAt = Clear
		}

	case ActionUnpublish:
		if !req.Actor.Admin {
			return Diff{}, models.NewForbiddenError("admin role required")
		}
		if !policy.AllowAdminUnpublish {
			return Diff{}, models.NewPolicyBlockedError(l.Status, models.StatusPaused, "allowAdminUnpublish")
		}
		if l.Status != models.StatusLive {
			return Diff{}, models.NewInvalidTransitionError(l.Status, models.StatusPaused)
		}
		d.To = models.StatusPaused
		d.PausedAt = Set
		d.ApprovedAt = Clear

	default:
		return Diff{}, models.NewValidationError(fmt.Sprintf("unknown action %q", req.Action))
	}

	return d, nil
}

func checkToggleActor(l models.Listing, actor Actor, policy Policy) error {
	if l.IsOwnedBy(actor.UserID) {
		return nil
	}
	if actor.Admin && policy.AllowAdminPause {
		return nil
	}
	return models.NewForbiddenError("only the owning host can pause or resume a listing")
}

// CleanReason trims a rejection reason and checks it against [min, MaxRejectionReasonLen].
func CleanReason(reason string, minLen int) (string, error) {
	reason = strings.TrimSpace(reason)
	n := utf8.RuneCountInString(reason)
	if minLen < 0 {
		minLen = 0
	}
	if n < minLen {
		return "", models.NewValidationError(fmt.Sprintf("rejection reason must be at least %d characters", minLen))
	}
	if n > models.MaxRejectionReasonLen {
		return "", models.NewValidationError(fmt.Sprintf("rejection reason must be at most %d characters", models.MaxRejectionReasonLen))
	}
	return reason, nil
}

// TargetFor maps an admin SetStatus target to the action that reaches it.
func TargetFor(status models.ListingStatus) (Action, bool) {
	switch status {
	case models.StatusLive:
		return ActionApprove, true
	case models.StatusRejected:
		return ActionReject, true
	case models.StatusPaused:
		return ActionUnpublish, true
	}
	return "", false
}

// ActivityType is the activity event recorded after the transition commits.
func (d Diff) ActivityType() models.ActivityType {
	switch d.Action {
	case ActionSubmit:
		return models.ActivityPropertySubmitted
	case ActionApprove:
		return models.ActivityPropertyPublished
	case ActionReject:
		return models.ActivityPropertyRejected
	case ActionResume:
		return models.ActivityPropertyResumed
	default:
		return models.ActivityPropertyPaused
	}
}

// Columns returns the column updates for a conditional UPDATE.
func (d Diff) Columns() map[string]any {
	cols := map[string]any{"status": d.To}
	put := func(col string, op TimeOp) {
		switch op {
		case Set:
			cols[col] = d.At
		case Clear:
			cols[col] = nil
		}
	}
	put("submitted_at", d.SubmittedAt)
	put("approved_at", d.ApprovedAt)
	put("rejected_at", d.RejectedAt)
	put("paused_at", d.PausedAt)
	switch {
	case d.ReasonSet:
		cols["rejection_reason"] = d.Reason
	case d.ReasonClear:
		cols["rejection_reason"] = ""
	}
	return cols
}

// ApplyTo returns a copy of l with the diff applied. l is not modified.
func (d Diff) ApplyTo(l models.Listing) models.Listing {
	out := l
	out.Status = d.To
	out.SubmittedAt = applyTime(l.SubmittedAt, d.SubmittedAt, d.At)
	out.ApprovedAt = applyTime(l.ApprovedAt, d.ApprovedAt, d.At)
	out.RejectedAt = applyTime(l.RejectedAt, d.RejectedAt, d.At)
	out.PausedAt = applyTime(l.PausedAt, d.PausedAt, d.At)
	switch {
	case d.ReasonSet:
		out.RejectionReason = d.Reason
	case d.ReasonClear:
		out.RejectionReason = ""
	}
	return out
}

func applyTime(cur *time.Time, op TimeOp, at time.Time) *time.Time {
	switch op {
	case Set:
		t := at
		return &t
	case Clear:
		return nil
	}
	return cur
}

// Consistent reports whether l satisfies the status/timestamp invariant:
// live has only approvedAt, rejected has only rejectedAt, other states have neither.
func Consistent(l models.Listing) bool {
	approved, rejected := l.ApprovedAt != nil, l.RejectedAt != nil
	switch l.Status {
	case models.StatusLive:
		return approved && !rejected
	case models.StatusRejected:
		return rejected && !approved
	default:
		return !approved && !rejected
	}
}
