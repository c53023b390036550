package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Incremented once per process start, attached to every log record.
	SettingKeyRunCounter = "run_counter"

	// Scheduled export status
	SettingKeyExportSyncLastAt      = "export_sync_last_at"
	SettingKeyExportSyncLastStatus  = "export_sync_last_status"
	SettingKeyExportSyncLastMessage = "export_sync_last_message"
)
