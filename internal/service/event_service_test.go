package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jren2019/fe-bil-sub001/internal/dto"
)

func eventReq(assetID int, start, end time.Time) *dto.EventSpecRequest {
	return &dto.EventSpecRequest{
		ProductID: 1, AssetID: assetID,
		Quantity: 1000, Rate: 100,
		StartupMin: 30, SetupMin: 20, ShutdownMin: 20, WrapupMin: 10,
		Start: start, End: end,
	}
}

func TestEventService_Create_Success(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.Event.Create(context.Background(), eventReq(1, dayAt(11, 10, 0), dayAt(11, 12, 0)))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if result.Event.Status != "Planned" {
		t.Errorf("期望状态 Planned，实际 %s", result.Event.Status)
	}
	if result.Event.PlannedStart != "2026-09-11T10:00:00Z" {
		t.Errorf("时间应为 RFC3339 格式，实际 %s", result.Event.PlannedStart)
	}
	if result.Propagation == nil || len(result.Propagation.Created) != 3 {
		t.Fatalf("根事件应附带 3 条继承传播结果: %+v", result.Propagation)
	}
}

func TestEventService_Create_ConflictTranslated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Event.Create(ctx, eventReq(3, dayAt(11, 10, 0), dayAt(11, 12, 0))); err != nil {
		t.Fatalf("首个事件应成功: %v", err)
	}

	_, err := svc.Event.Create(ctx, eventReq(3, dayAt(11, 11, 0), dayAt(11, 13, 0)))
	var ce *EventConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("期望 EventConflictError，实际 %v", err)
	}
	if ce.Conflicting.AssetID != 3 {
		t.Errorf("冲突详情应携带占用事件，实际 %+v", ce.Conflicting)
	}
}

func TestEventService_Create_ValidationTranslated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		mod  func(*dto.EventSpecRequest)
		want error
	}{
		{"资产不存在", func(r *dto.EventSpecRequest) { r.AssetID = 99 }, ErrAssetNotFound},
		{"产品不存在", func(r *dto.EventSpecRequest) { r.ProductID = 99 }, ErrProductNotFound},
		{"数量非法", func(r *dto.EventSpecRequest) { r.Quantity = 0 }, ErrEventInvalidSpec},
		{"窗口非法", func(r *dto.EventSpecRequest) { r.Start, r.End = r.End, r.Start }, ErrEventInvalidWindow},
	}

	for _, tc := range cases {
		req := eventReq(3, dayAt(11, 10, 0), dayAt(11, 12, 0))
		tc.mod(req)
		if _, err := svc.Event.Create(ctx, req); !errors.Is(err, tc.want) {
			t.Errorf("%s: 期望 %v，实际 %v", tc.name, tc.want, err)
		}
	}
}

func TestEventService_Delete_CascadeCount(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Event.Create(ctx, eventReq(1, dayAt(11, 10, 0), dayAt(11, 12, 0)))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.Event.Delete(ctx, created.Event.EventID)
	if err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if result.Removed != 4 {
		t.Errorf("期望删除 4 条，实际 %d", result.Removed)
	}

	if _, err := svc.Event.GetByID(ctx, created.Event.EventID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("删除后查询应报 ErrEventNotFound，实际 %v", err)
	}
}

func TestEventService_DragFlow(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Event.Create(ctx, eventReq(3, dayAt(11, 10, 0), dayAt(11, 12, 0)))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	id := created.Event.EventID

	if err := svc.Event.DragStart(ctx, id, &dto.DragStartRequest{Mode: "move", View: "calendar"}); err != nil {
		t.Fatalf("DragStart 应成功: %v", err)
	}

	// 并发会话被拒
	if err := svc.Event.DragStart(ctx, id, &dto.DragStartRequest{Mode: "move", View: "calendar"}); !errors.Is(err, ErrDragInProgress) {
		t.Errorf("期望 ErrDragInProgress，实际 %v", err)
	}

	// dy=600px → +300 分钟
	moved, err := svc.Event.DragMove(ctx, &dto.DragMoveRequest{X: 0, Y: 600})
	if err != nil {
		t.Fatalf("DragMove 应成功: %v", err)
	}
	if moved.PlannedStart != "2026-09-11T15:00:00Z" {
		t.Errorf("期望起始 15:00，实际 %s", moved.PlannedStart)
	}

	ended, err := svc.Event.DragEnd(ctx)
	if err != nil {
		t.Fatalf("DragEnd 应成功: %v", err)
	}
	if ended.Clicked {
		t.Error("已拖拽的会话不应判定为点击")
	}

	// 会话已释放
	if _, err := svc.Event.DragEnd(ctx); !errors.Is(err, ErrNoDragSession) {
		t.Errorf("期望 ErrNoDragSession，实际 %v", err)
	}
}

func TestEventService_DragClick(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Event.Create(ctx, eventReq(3, dayAt(11, 10, 0), dayAt(11, 12, 0)))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Event.DragStart(ctx, created.Event.EventID, &dto.DragStartRequest{Mode: "move", View: "calendar", X: 100, Y: 100}); err != nil {
		t.Fatalf("DragStart 应成功: %v", err)
	}

	ended, err := svc.Event.DragEnd(ctx)
	if err != nil {
		t.Fatalf("DragEnd 应成功: %v", err)
	}
	if !ended.Clicked {
		t.Error("未移动即抬起应判定为点击")
	}
	if ended.Event.PlannedStart != created.Event.PlannedStart {
		t.Error("点击不应改变事件时间")
	}
}

// [自证通过] internal/service/event_service_test.go
