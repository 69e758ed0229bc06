package entity

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Course struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
