package hotel

import (
	"fmt"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/notification"
)

// Action is a reviewer command on an application.
type Action string

const (
	ActionApprove       Action = "approve"
	ActionReject        Action = "reject"
	ActionRestore       Action = "restore"         // rejected -> pending
	ActionMoveToPending Action = "move-to-pending" // approved -> pending
)

type rule struct {
	to        Status
	auditType auditlog.Type
	level     notification.Level
	kind      notification.Kind
}

// There is no terminal state. Approving an approved application is allowed
// and records another approval entry.
var transitions = map[Status]map[Action]rule{
	StatusPending: {
		ActionApprove: {StatusApproved, auditlog.TypeApproval, notification.LevelSuccess, notification.KindApplicationApproved},
		ActionReject:  {StatusRejected, auditlog.TypeRejection, notification.LevelInfo, notification.KindApplicationRejected},
	},
	StatusRejected: {
		ActionRestore: {StatusPending, auditlog.TypeUpdate, notification.LevelInfo, notification.KindApplicationPending},
		ActionApprove: {StatusApproved, auditlog.TypeApproval, notification.LevelSuccess, notification.KindApplicationApproved},
	},
	StatusApproved: {
		ActionMoveToPending: {StatusPending, auditlog.TypeUpdate, notification.LevelInfo, notification.KindApplicationPending},
		ActionReject:        {StatusRejected, auditlog.TypeRejection, notification.LevelInfo, notification.KindApplicationRejected},
		ActionApprove:       {StatusApproved, auditlog.TypeApproval, notification.LevelSuccess, notification.KindApplicationApproved},
	},
}

func lookup(from Status, action Action) (rule, error) {
	r, ok := transitions[from][action]
	if !ok {
		return rule{}, apperror.Validation("cannot %s an application that is %s", action, from)
	}
	return r, nil
}

// Next returns the status reached by applying action in from.
func Next(from Status, action Action) (Status, error) {
	r, err := lookup(from, action)
	if err != nil {
		return "", err
	}
	return r.to, nil
}

// restoreAction picks the action that brings an application back to pending.
func restoreAction(from Status) Action {
	if from == StatusApproved {
		return ActionMoveToPending
	}
	return ActionRestore
}

// activityText is the log line for a transition. The hotel name is copied
// in so the entry stays readable after the hotel is renamed or deleted.
func activityText(action Action, name string) string {
	switch action {
	case ActionApprove:
		return fmt.Sprintf("%s was approved", name)
	case ActionReject:
		return fmt.Sprintf("%s was rejected", name)
	default:
		return fmt.Sprintf("%s moved back to Pending", name)
	}
}

func noticeText(action Action, name string) string {
	switch action {
	case ActionApprove:
		return fmt.Sprintf("%s approved and listed in the member directory", name)
	case ActionReject:
		return fmt.Sprintf("%s rejected", name)
	default:
		return fmt.Sprintf("%s moved back to pending review", name)
	}
}
