package dto

import "time"

// ── 生产事件模块 DTO ──

// EventSpecRequest 创建/编辑事件请求
// 产品、资产、数量、产率为必填；缺失即校验失败，操作整体中止
type EventSpecRequest struct {
	ProductID   int       `json:"product_id"   binding:"required"`
	AssetID     int       `json:"asset_id"     binding:"required"`
	Quantity    int       `json:"quantity"     binding:"required,gt=0"`
	Rate        int       `json:"rate"         binding:"required,gt=0"`
	StartupMin  int       `json:"startup_min"  binding:"omitempty,gte=0"`
	SetupMin    int       `json:"setup_min"    binding:"omitempty,gte=0"`
	ShutdownMin int       `json:"shutdown_min" binding:"omitempty,gte=0"`
	WrapupMin   int       `json:"wrapup_min"   binding:"omitempty,gte=0"`
	Start       time.Time `json:"start"        binding:"required"`
	End         time.Time `json:"end"          binding:"required"`
	Status      string    `json:"status"       binding:"omitempty,oneof=Planned InProgress Completed Delayed Cancelled"`
}

// EventResponse 生产事件响应
type EventResponse struct {
	EventID           int64    `json:"event_id"`
	ProductID         int      `json:"product_id"`
	AssetID           int      `json:"asset_id"`
	PlannedQuantity   int      `json:"planned_quantity"`
	PlannedRate       int      `json:"planned_rate"`
	StartupMin        int      `json:"startup_min"`
	SetupMin          int      `json:"setup_min"`
	ShutdownMin       int      `json:"shutdown_min"`
	WrapupMin         int      `json:"wrapup_min"`
	PlannedStart      string   `json:"planned_start"`
	PlannedEnd        string   `json:"planned_end"`
	ProductionTimeMin int      `json:"production_time_min"`
	Status            string   `json:"status"`
	ActualQuantity    *int     `json:"actual_quantity,omitempty"`
	ActualStart       *string  `json:"actual_start,omitempty"`
	ActualEnd         *string  `json:"actual_end,omitempty"`
	Efficiency        *float64 `json:"efficiency,omitempty"`
	Quality           *float64 `json:"quality,omitempty"`
	ParentEventID     *int64   `json:"parent_event_id,omitempty"`
	IsInherited       bool     `json:"is_inherited"`
	InheritanceLevel  int      `json:"inheritance_level"`
}

// SkipResponse 继承传播中单个后代的跳过记录
type SkipResponse struct {
	AssetID            int    `json:"asset_id"`
	AssetName          string `json:"asset_name"`
	Level              int    `json:"level"`
	ConflictingEventID int64  `json:"conflicting_event_id"`
}

// PropagationResponse 向下继承结果响应
type PropagationResponse struct {
	Created []EventResponse `json:"created"`
	Skipped []SkipResponse  `json:"skipped,omitempty"`
}

// EventMutationResponse 创建/编辑事件响应（含继承传播结果）
type EventMutationResponse struct {
	Event       EventResponse        `json:"event"`
	Propagation *PropagationResponse `json:"propagation,omitempty"`
}

// DeleteEventResponse 删除事件响应
type DeleteEventResponse struct {
	Removed int `json:"removed"` // 本体 + 级联删除的继承子级
}

// ── 拖拽会话 DTO ──

// DragStartRequest 指针按下请求
type DragStartRequest struct {
	Mode            string     `json:"mode" binding:"required,oneof=move resize-start resize-end"`
	View            string     `json:"view" binding:"required,oneof=calendar timeline"`
	X               float64    `json:"x"`
	Y               float64    `json:"y"`
	TimelineWidthPx float64    `json:"timeline_width_px"`
	VisibleStart    *time.Time `json:"visible_start,omitempty"`
	VisibleEnd      *time.Time `json:"visible_end,omitempty"`
}

// DragMoveRequest 指针移动请求
type DragMoveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DragEndResponse 指针抬起响应
// clicked=true 表示该手势是点击：前端应打开编辑对话框，事件时间零变更
type DragEndResponse struct {
	Clicked bool          `json:"clicked"`
	Event   EventResponse `json:"event"`
}

// [自证通过] internal/dto/event.go
