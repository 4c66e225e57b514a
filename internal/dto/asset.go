package dto

// ── 资产/产品模块 DTO ──

// AssetResponse 资产树节点响应
type AssetResponse struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	AssetType  string          `json:"asset_type"`
	IsTopLevel bool            `json:"is_top_level"`
	ParentID   *int            `json:"parent_id,omitempty"`
	SubAssets  []AssetResponse `json:"sub_assets,omitempty"`
}

// AssetNodeResponse 扁平化资产节点（带继承层级）
type AssetNodeResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	AssetType string `json:"asset_type"`
	Level     int    `json:"level"`
}

// ProductResponse 产品目录项响应
type ProductResponse struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	StandardRate float64 `json:"standard_rate"`
	Unit         string  `json:"unit"`
	SetupTimeMin int     `json:"setup_time_min"`
}
