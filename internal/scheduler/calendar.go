package scheduler

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// ── 日历/时间线投影 ──
//
// CalendarEvent 是事件集合的展示投影，按需重算、不独立持久。
// 颜色按 (资产名或继承层级, 状态) 选取：完成态全色，进行中 80% 透明度，
// 计划态 60% 透明度，延迟固定红，取消固定灰。

var colorPalette = []string{
	"#1e88e5", "#43a047", "#fb8c00", "#8e24aa",
	"#00acc1", "#f4511e", "#3949ab", "#7cb342",
}

const (
	colorDelayed   = "#e53935"
	colorCancelled = "#9e9e9e"
)

// Granularity 日历粒度
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// TimelineZoom 时间线缩放档位
type TimelineZoom string

const (
	ZoomHour  TimelineZoom = "hour"
	ZoomDay   TimelineZoom = "day"
	ZoomWeek  TimelineZoom = "week"
	ZoomShift TimelineZoom = "shift"
)

// CalendarEvents 事件集合的日历投影，ID 升序
func (e *Engine) CalendarEvents(f EventFilter) []model.CalendarEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	assetSet := make(map[int]bool, len(f.AssetIDs))
	for _, id := range f.AssetIDs {
		assetSet[id] = true
	}

	var out []model.CalendarEvent
	for _, id := range e.sortedEventIDs() {
		ev := e.events[id]
		if len(assetSet) > 0 && !assetSet[ev.AssetID] {
			continue
		}
		if !f.From.IsZero() && !ev.PlannedEnd.After(f.From) {
			continue
		}
		if !f.To.IsZero() && !ev.PlannedStart.Before(f.To) {
			continue
		}
		out = append(out, e.project(ev))
	}
	return out
}

// project 单事件投影；调用方需持有锁
func (e *Engine) project(ev *model.ProductionEvent) model.CalendarEvent {
	title := fmt.Sprintf("事件 %d", ev.EventID)
	product, pok := e.prodIndex[ev.ProductID]
	asset, aok := e.assetIndex[ev.AssetID]
	if pok && aok {
		title = fmt.Sprintf("%s @ %s", product.Name, asset.Name)
	}
	return model.CalendarEvent{
		ID:      ev.EventID,
		Title:   title,
		Start:   ev.PlannedStart,
		End:     ev.PlannedEnd,
		Color:   e.colorFor(ev),
		AssetID: ev.AssetID,
	}
}

// colorFor (资产名或继承层级, 状态) → 颜色令牌
func (e *Engine) colorFor(ev *model.ProductionEvent) string {
	switch ev.Status {
	case model.EventStatusDelayed:
		return colorDelayed
	case model.EventStatusCancelled:
		return colorCancelled
	}

	var idx int
	if ev.IsInherited {
		idx = ev.InheritanceLevel % len(colorPalette)
	} else if a, ok := e.assetIndex[ev.AssetID]; ok {
		h := fnv.New32a()
		h.Write([]byte(a.Name))
		idx = int(h.Sum32() % uint32(len(colorPalette)))
	}
	base := colorPalette[idx]

	switch ev.Status {
	case model.EventStatusInProgress:
		return base + "cc" // 80% 不透明度
	case model.EventStatusPlanned:
		return base + "99" // 60% 不透明度
	default: // Completed
		return base
	}
}

// RangeFor 日历粒度对应的 [from, to) 区间
func RangeFor(anchor time.Time, g Granularity, loc *time.Location) (time.Time, time.Time) {
	day := truncateToDay(anchor, loc)
	switch g {
	case GranularityWeek:
		// 周一为一周之始
		offset := (int(day.Weekday()) + 6) % 7
		from := day.AddDate(0, 0, -offset)
		return from, from.AddDate(0, 0, 7)
	case GranularityMonth:
		from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 1, 0)
	default:
		return day, day.AddDate(0, 0, 1)
	}
}

// ZoomDuration 时间线缩放档位对应的可视时长
// shift 档固定 8 小时窗口，具体窗口经班次导航选取
func ZoomDuration(z TimelineZoom) time.Duration {
	switch z {
	case ZoomHour:
		return time.Hour
	case ZoomWeek:
		return 7 * 24 * time.Hour
	case ZoomShift:
		return 8 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// ShiftByIndex 班次导航：索引越界时环绕（next/prev 在列表两端回卷）
// 返回选中班次及环绕后的实际索引；无班次时 ok=false
func (e *Engine) ShiftByIndex(idx int) (model.Shift, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.shiftsLocked(ShiftFilter{})
	if len(list) == 0 {
		return model.Shift{}, 0, false
	}
	idx = ((idx % len(list)) + len(list)) % len(list)
	return list[idx], idx, true
}

// [自证通过] internal/scheduler/calendar.go
