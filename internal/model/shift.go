package model

import "time"

// ShiftWindow 固定班次窗口名
type ShiftWindow string

const (
	ShiftWindowDay     ShiftWindow = "Day"     // 06:00–14:00
	ShiftWindowEvening ShiftWindow = "Evening" // 14:00–22:00
	ShiftWindowNight   ShiftWindow = "Night"   // 22:00–06:00
)

// ShiftStatus 班次派生状态（成员事件状态的纯函数）
type ShiftStatus string

const (
	ShiftStatusPlanned   ShiftStatus = "Planned"
	ShiftStatusActive    ShiftStatus = "Active"
	ShiftStatusCompleted ShiftStatus = "Completed"
)

// Shift 班次记录 — 按 (资产, 日期, 窗口) 懒创建，从不显式删除
// 事件迁走后允许留空（软孤儿）
type Shift struct {
	Window    ShiftWindow `json:"window"`
	StartHour int         `json:"start_hour"`
	EndHour   int         `json:"end_hour"`
	Date      time.Time   `json:"date"` // 截断到当日零点
	AssetID   int         `json:"asset_id"`

	EventIDs     []int64     `json:"event_ids"`
	TotalPlanned int         `json:"total_planned"` // 成员事件计划量之和
	Status       ShiftStatus `json:"status"`
}
