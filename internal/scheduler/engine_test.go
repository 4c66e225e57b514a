package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// ── 测试辅助 ──

// 固定"当前时刻"：2026-09-10（周四）12:00 UTC
var testNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

// 资产森林：
//
//	1 CNC Milling Station (TestingEquipment, 顶级)
//	├── 2 Spindle Motor (Component)
//	│   └── 3 Vibration Sensor (Sensor)
//	└── 4 Coolant Pump (Pump)
func testAssets() []model.Asset {
	p1, p2 := 1, 2
	return []model.Asset{
		{
			AssetID: 1, Name: "CNC Milling Station", AssetType: model.AssetTypeTestingEquipment, IsTopLevel: true,
			SubAssets: []model.Asset{
				{
					AssetID: 2, Name: "Spindle Motor", AssetType: model.AssetTypeComponent, ParentID: &p1,
					SubAssets: []model.Asset{
						{AssetID: 3, Name: "Vibration Sensor", AssetType: model.AssetTypeSensor, ParentID: &p2},
					},
				},
				{AssetID: 4, Name: "Coolant Pump", AssetType: model.AssetTypePump, ParentID: &p1},
			},
		},
	}
}

func testProducts() []model.Product {
	return []model.Product{
		{ProductID: 1, Name: "Steel Bracket M8", StandardRate: 120, Unit: "pcs", SetupTimeMin: 15},
		{ProductID: 2, Name: "Bearing Assembly", StandardRate: 80, Unit: "pcs", SetupTimeMin: 20},
	}
}

func newTestEngine() *Engine {
	return NewEngine(testAssets(), testProducts(), Config{
		Seed:       42,
		WindowDays: 14,
		Location:   time.UTC,
		Now:        func() time.Time { return testNow },
	})
}

// specAt 标准事件参数：数量 1000、产率 100、工序 30/20/20/10
func specAt(assetID int, start, end time.Time) EventSpec {
	return EventSpec{
		ProductID: 1, AssetID: assetID,
		Quantity: 1000, Rate: 100,
		StartupMin: 30, SetupMin: 20, ShutdownMin: 20, WrapupMin: 10,
		Start: start, End: end,
	}
}

func dayAt(day, hour, min int) time.Time {
	return time.Date(2026, 9, day, hour, min, 0, 0, time.UTC)
}

// ── 校验 ──

func TestEngine_CreateEvent_Validation(t *testing.T) {
	e := newTestEngine()
	start, end := dayAt(11, 10, 0), dayAt(11, 12, 0)

	cases := []struct {
		name string
		spec EventSpec
		want error
	}{
		{"资产不存在", specAt(99, start, end), ErrAssetNotFound},
		{"产品不存在", func() EventSpec { s := specAt(3, start, end); s.ProductID = 99; return s }(), ErrProductNotFound},
		{"数量为零", func() EventSpec { s := specAt(3, start, end); s.Quantity = 0; return s }(), ErrInvalidSpec},
		{"产率为负", func() EventSpec { s := specAt(3, start, end); s.Rate = -1; return s }(), ErrInvalidSpec},
		{"结束不晚于开始", specAt(3, end, start), ErrInvalidWindow},
		{"零长窗口", specAt(3, start, start), ErrInvalidWindow},
	}

	for _, tc := range cases {
		if _, _, err := e.CreateEvent(tc.spec); !errors.Is(err, tc.want) {
			t.Errorf("%s: 期望 %v，实际 %v", tc.name, tc.want, err)
		}
	}

	if got := len(e.Events(EventFilter{})); got != 0 {
		t.Errorf("校验失败不应留下事件，实际 %d 条", got)
	}
}

func TestEngine_CreateEvent_Defaults(t *testing.T) {
	e := newTestEngine()

	ev, _, err := e.CreateEvent(specAt(3, dayAt(11, 10, 0), dayAt(11, 12, 0)))
	if err != nil {
		t.Fatalf("CreateEvent 应成功: %v", err)
	}
	if ev.Status != model.EventStatusPlanned {
		t.Errorf("状态缺省应为 Planned，实际 %s", ev.Status)
	}
	// 净生产时间 = 120 − (30+20+20+10) = 40
	if ev.ProductionTimeMin != 40 {
		t.Errorf("期望净生产时间 40，实际 %d", ev.ProductionTimeMin)
	}
	if ev.IsInherited || ev.ParentEventID != nil {
		t.Error("手动创建的根事件不应带继承元数据")
	}
}

func TestEngine_ProductionTime_Floor(t *testing.T) {
	e := newTestEngine()

	// 窗口 30 分钟，工序合计 80 分钟 → 下限 15
	ev, _, err := e.CreateEvent(specAt(3, dayAt(11, 10, 0), dayAt(11, 10, 30)))
	if err != nil {
		t.Fatalf("CreateEvent 应成功: %v", err)
	}
	if ev.ProductionTimeMin != 15 {
		t.Errorf("期望净生产时间下限 15，实际 %d", ev.ProductionTimeMin)
	}
}

// ── 冲突门禁 ──

func TestEngine_CreateEvent_ConflictAborts(t *testing.T) {
	e := newTestEngine()

	if _, _, err := e.CreateEvent(specAt(3, dayAt(11, 10, 0), dayAt(11, 12, 0))); err != nil {
		t.Fatalf("首个事件应成功: %v", err)
	}
	before := len(e.Events(EventFilter{}))

	_, _, err := e.CreateEvent(specAt(3, dayAt(11, 11, 0), dayAt(11, 13, 0)))
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("期望 ConflictError，实际 %v", err)
	}
	if ce.Conflicting.AssetID != 3 {
		t.Errorf("冲突事件应在资产 3 上，实际 %d", ce.Conflicting.AssetID)
	}

	if after := len(e.Events(EventFilter{})); after != before {
		t.Errorf("冲突中止后集合不应有部分变更: %d → %d", before, after)
	}
}

func TestEngine_CreateEvent_TouchingWindowsAllowed(t *testing.T) {
	e := newTestEngine()

	if _, _, err := e.CreateEvent(specAt(3, dayAt(11, 10, 0), dayAt(11, 12, 0))); err != nil {
		t.Fatalf("首个事件应成功: %v", err)
	}
	// 半开区间：前者结束即后者开始，不算冲突
	if _, _, err := e.CreateEvent(specAt(3, dayAt(11, 12, 0), dayAt(11, 14, 0))); err != nil {
		t.Errorf("端点相接的窗口应允许: %v", err)
	}
}

func TestEngine_UpdateEvent_ExcludesSelf(t *testing.T) {
	e := newTestEngine()

	ev, _, err := e.CreateEvent(specAt(3, dayAt(11, 10, 0), dayAt(11, 12, 0)))
	if err != nil {
		t.Fatalf("CreateEvent 应成功: %v", err)
	}

	// 与自身重叠的编辑不应被冲突门禁拦下
	updated, _, err := e.UpdateEvent(ev.EventID, specAt(3, dayAt(11, 10, 30), dayAt(11, 12, 30)))
	if err != nil {
		t.Fatalf("与自身重叠的编辑应成功: %v", err)
	}
	if !updated.PlannedStart.Equal(dayAt(11, 10, 30)) {
		t.Errorf("期望起始 10:30，实际 %v", updated.PlannedStart)
	}
}

// ── 删除 ──

func TestEngine_DeleteEvent_CascadesToChildren(t *testing.T) {
	e := newTestEngine()

	parent, prop, err := e.CreateEvent(specAt(1, dayAt(11, 10, 0), dayAt(11, 12, 0)))
	if err != nil {
		t.Fatalf("CreateEvent 应成功: %v", err)
	}
	if len(prop.Created) != 3 {
		t.Fatalf("期望派生 3 条继承事件，实际 %d", len(prop.Created))
	}

	removed, err := e.DeleteEvent(parent.EventID)
	if err != nil {
		t.Fatalf("DeleteEvent 应成功: %v", err)
	}
	if removed != 4 {
		t.Errorf("期望删除 4 条（本体+3 子级），实际 %d", removed)
	}
	if got := len(e.Events(EventFilter{})); got != 0 {
		t.Errorf("级联删除后不应残留事件，实际 %d", got)
	}
}

func TestEngine_DeleteEvent_InheritedChildOnly(t *testing.T) {
	e := newTestEngine()

	_, prop, err := e.CreateEvent(specAt(1, dayAt(11, 10, 0), dayAt(11, 12, 0)))
	if err != nil {
		t.Fatalf("CreateEvent 应成功: %v", err)
	}

	child := prop.Created[0]
	removed, err := e.DeleteEvent(child.EventID)
	if err != nil {
		t.Fatalf("删除继承子级应成功: %v", err)
	}
	if removed != 1 {
		t.Errorf("继承子级删除不应级联，期望 1，实际 %d", removed)
	}
	if got := len(e.Events(EventFilter{})); got != 3 {
		t.Errorf("期望剩余 3 条，实际 %d", got)
	}
}

func TestEngine_DeleteEvent_NotFound(t *testing.T) {
	e := newTestEngine()
	if _, err := e.DeleteEvent(12345); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("期望 ErrEventNotFound，实际 %v", err)
	}
}

// ── 列表过滤 ──

func TestEngine_Events_Filter(t *testing.T) {
	e := newTestEngine()

	if _, _, err := e.CreateEvent(specAt(3, dayAt(11, 10, 0), dayAt(11, 12, 0))); err != nil {
		t.Fatalf("CreateEvent 应成功: %v", err)
	}
	if _, _, err := e.CreateEvent(specAt(4, dayAt(12, 10, 0), dayAt(12, 12, 0))); err != nil {
		t.Fatalf("CreateEvent 应成功: %v", err)
	}

	if got := len(e.Events(EventFilter{AssetIDs: []int{3}})); got != 1 {
		t.Errorf("按资产过滤：期望 1 条，实际 %d", got)
	}

	// 半开区间 [from, to)：11 日的事件不落入 12 日起的窗口
	got := e.Events(EventFilter{From: dayAt(12, 0, 0), To: dayAt(13, 0, 0)})
	if len(got) != 1 || got[0].AssetID != 4 {
		t.Errorf("按时间过滤：期望资产 4 的 1 条事件，实际 %d 条", len(got))
	}

	// 与 from 端点相接的事件（结束 == from）不计
	got = e.Events(EventFilter{From: dayAt(11, 12, 0)})
	if len(got) != 1 {
		t.Errorf("端点相接应排除：期望 1 条，实际 %d", len(got))
	}
}

// [自证通过] internal/scheduler/engine_test.go
