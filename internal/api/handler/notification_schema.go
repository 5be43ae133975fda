package handler

import "time"

type notificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// markAllReadResponse reports how many notifications the bulk flip touched.
type markAllReadResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}
