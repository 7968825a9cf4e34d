package dto

import "github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"

// LoginRequest represents the login form submission
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required" example:"m1a"`
	Password string `json:"password" form:"password" binding:"required" example:"1234"`
}

// SessionInfo describes the authenticated principal behind a session.
type SessionInfo struct {
	Username    string          `json:"username"`
	DisplayName string          `json:"displayName"`
	Role        models.RoleType `json:"role"`
	Group       string          `json:"group,omitempty"`
	Grade       int             `json:"grade,omitempty"`
}

// LoginViewResponse is the login page view-model: whether a principal is
// already bound, plus the drained flash queue.
type LoginViewResponse struct {
	Authenticated bool           `json:"authenticated"`
	Session       *SessionInfo   `json:"session,omitempty"`
	Messages      []FlashMessage `json:"messages"`
}

// TrimesterOption is one selectable trimester in the selection view.
type TrimesterOption struct {
	Key      models.TrimesterKey `json:"key"`
	Label    string              `json:"label"`
	Selected bool                `json:"selected"`
}

// TrimesterViewResponse is the trimester selection view-model.
type TrimesterViewResponse struct {
	Session  *SessionInfo      `json:"session"`
	Options  []TrimesterOption `json:"options"`
	Messages []FlashMessage    `json:"messages"`
}
