package model

// Defect rows keep their autoincrement id only to preserve insertion order;
// the (category_id, label) pair is the real identity.
type Defect struct {
	DefectID   uint64 `gorm:"column:defect_id;primaryKey;autoIncrement"`
	CategoryID uint64 `gorm:"column:category_id;not null;uniqueIndex:idx_defects_scope_label"`
	Label      string `gorm:"column:label;type:text;not null;uniqueIndex:idx_defects_scope_label"`
}

func (Defect) TableName() string {
	return "defects"
}
