package model

// TriageEvent rows are append-only. category_id is a point-in-time
// reference: deleting a category leaves its events in place.
// sync_status is stored for future synchronization but never acted upon.
type TriageEvent struct {
	EventID      uint64 `gorm:"column:event_id;primaryKey;autoIncrement"`
	CategoryID   uint64 `gorm:"column:category_id;not null;index"`
	InternalCode string `gorm:"column:internal_code;type:text;not null"`
	SerialNumber string `gorm:"column:serial_number;type:text;not null"`
	DefectLabel  string `gorm:"column:defect_label;type:text;not null"`
	RecordedAt   string `gorm:"column:recorded_at;type:text;not null"`
	SyncStatus   string `gorm:"column:sync_status;type:text;not null;default:pending"`
}

func (TriageEvent) TableName() string {
	return "triage_events"
}
