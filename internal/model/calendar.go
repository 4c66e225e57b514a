package model

import "time"

// CalendarEvent 生产事件的展示投影 — 随事件集合变化按需重算，不独立持有状态
type CalendarEvent struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Color   string    `json:"color"`
	AssetID int       `json:"asset_id"`
}
