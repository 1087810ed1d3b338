package models

// Setting 平台与卖家配置的键值存储，卖家级配置以 key:<sellerID> 落键
type Setting struct {
	Key       string `gorm:"primarykey" json:"key"`  // 配置键
	ValueJSON JSON   `gorm:"type:json" json:"value"` // 配置值（JSON）
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
