package controllers

import (
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models/dto"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/services"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/session"
)

// flashMessages drains the session's flash queue into its response shape.
func flashMessages(sess *session.Session) []dto.FlashMessage {
	if sess == nil {
		return []dto.FlashMessage{}
	}
	drained := sess.PopFlashes()
	messages := make([]dto.FlashMessage, 0, len(drained))
	for _, flash := range drained {
		messages = append(messages, dto.FlashMessage{
			Text:     flash.Text,
			Severity: string(flash.Severity),
		})
	}
	return messages
}

// sessionInfo maps an authenticated session to its response shape, nil for
// anonymous sessions.
func sessionInfo(sess *session.Session) *dto.SessionInfo {
	if sess == nil || !sess.IsAuthenticated() {
		return nil
	}
	return &dto.SessionInfo{
		Username:    sess.Username(),
		DisplayName: sess.DisplayName(),
		Role:        sess.Role(),
		Group:       sess.Group(),
		Grade:       sess.Grade(),
	}
}

// toGradeRows maps report rows to their response shape. A row with every
// score at the sentinel renders as not yet graded.
func toGradeRows(rows []services.ReportRow) []dto.GradeRow {
	out := make([]dto.GradeRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.GradeRow{
			Student: dto.NewStudentResponse(row.Student),
			Grades:  row.Grades,
			Average: row.Average,
			Graded:  row.Average > 0,
		})
	}
	return out
}
