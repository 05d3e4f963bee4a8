package models

import "time"

type ReferralExport struct {
	ExportID  string    `json:"export_id"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}
