package entity

// Category представляет категорию вопросов. Категории только читаются API
// и заполняются через cmd/seed.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"size:255;not null" json:"type"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// CategoryTypes превращает упорядоченный список категорий в отображение id → type
func CategoryTypes(categories []Category) map[uint]string {
	types := make(map[uint]string, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}
	return types
}
