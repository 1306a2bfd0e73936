package audit

import (
	"context"

	"github.com/ykwizera/studysync/pkg/log"
)

// Audit actions.
const (
	ActionRegister     = "user.register"
	ActionLogin        = "user.login"
	ActionLoginFailed  = "user.login_failed"
	ActionRefreshToken = "user.refresh_token"
	ActionCreateGroup  = "group.create"
	ActionJoinGroup    = "group.join"
	ActionCreateMeet   = "meeting.create"
	ActionRSVP         = "meeting.rsvp"
	ActionUploadFile   = "material.upload"
	ActionDeleteFile   = "material.delete"
	ActionWSAuth       = "chat.authenticate"
	ActionWSMessage    = "chat.message"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, userID int64, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Int64(log.FieldUserID, userID).
		Msg(msg)
}

// LogWithDetail emits an audit log with extra detail field.
func LogWithDetail(ctx context.Context, action string, userID int64, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Int64(log.FieldUserID, userID).
		Str(FieldDetail, detail).
		Msg(msg)
}
