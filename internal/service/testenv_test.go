package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/jren2019/fe-bil-sub001/config"
	"github.com/jren2019/fe-bil-sub001/internal/model"
	"github.com/jren2019/fe-bil-sub001/internal/scheduler"
)

// ── 测试夹具 ──
//
// 引擎本身就是内存实现，服务层测试直接构造真实引擎，不做 mock。

var testNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

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

func newTestEngine() *scheduler.Engine {
	return scheduler.NewEngine(testAssets(), testProducts(), scheduler.Config{
		Seed:       42,
		WindowDays: 14,
		Location:   time.UTC,
		Now:        func() time.Time { return testNow },
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Schedule: config.ScheduleConfig{
			WindowDays:  14,
			Seed:        42,
			Timezone:    "UTC",
			RefreshCron: "0 0 * * *",
		},
	}
}

func newTestService() (*Service, *scheduler.Engine) {
	engine := newTestEngine()
	return NewService(testConfig(), engine, zap.NewNop()), engine
}

func dayAt(day, hour, min int) time.Time {
	return time.Date(2026, 9, day, hour, min, 0, 0, time.UTC)
}

// [自证通过] internal/service/testenv_test.go
