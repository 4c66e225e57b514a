package model

// Product 产品目录项 — 对应 products
// 不可变参考数据：启动时创建一次，此后只读
type Product struct {
	ProductID    int     `gorm:"primaryKey"                 json:"product_id"`
	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	StandardRate float64 `gorm:"not null"                   json:"standard_rate"` // 标准产率（件/小时）
	Unit         string  `gorm:"type:varchar(20);not null"  json:"unit"`          // 计量单位
	SetupTimeMin int     `gorm:"not null"                   json:"setup_time_min"`
}

// TableName 指定表名
func (Product) TableName() string { return "products" }
