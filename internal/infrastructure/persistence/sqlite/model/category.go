package model

type Category struct {
	CategoryID uint64 `gorm:"column:category_id;primaryKey;autoIncrement"`
	Name       string `gorm:"column:name;type:text;not null"`
	Icon       string `gorm:"column:icon;type:text;not null"`
}

func (Category) TableName() string {
	return "categories"
}
