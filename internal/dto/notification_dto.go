package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	Id        uuid.UUID `json:"id"`
	TypeCode  string    `json:"type_code"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Items       []NotificationResponse `json:"items"`
	Total       int64                  `json:"total"`
	UnreadCount int64                  `json:"unread_count"`
}
