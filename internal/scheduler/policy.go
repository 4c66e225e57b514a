package scheduler

import (
	"math/rand"
	"time"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// ── 排程策略表 ──
//
// 每种资产类型对应一条排程策略：当日是否开工的判定（可依赖周末标志，
// 也可为概率性判定），以及候选时段列表。生成器逐日逐时段套用。

// SlotSpec 候选时段 {起始整点, 时长小时}
type SlotSpec struct {
	StartHour     int
	DurationHours int
}

// SchedulePolicy 资产类型的排程策略
type SchedulePolicy struct {
	WorksOn func(day time.Weekday, rng *rand.Rand) bool
	Slots   []SlotSpec
}

func worksEveryDay(time.Weekday, *rand.Rand) bool { return true }

func worksWeekdays(day time.Weekday, _ *rand.Rand) bool {
	return day != time.Saturday && day != time.Sunday
}

// PolicyFor 查询资产类型的排程策略
func PolicyFor(t model.AssetType) SchedulePolicy {
	switch t {
	case model.AssetTypeTestingEquipment:
		return SchedulePolicy{
			WorksOn: worksEveryDay,
			Slots:   []SlotSpec{{StartHour: 8, DurationHours: 4}, {StartHour: 13, DurationHours: 3}},
		}
	case model.AssetTypePump:
		return SchedulePolicy{
			WorksOn: worksWeekdays,
			Slots:   []SlotSpec{{StartHour: 6, DurationHours: 6}, {StartHour: 14, DurationHours: 4}},
		}
	case model.AssetTypeCompressor:
		// 连续生产：三班倒全天候
		return SchedulePolicy{
			WorksOn: worksEveryDay,
			Slots:   []SlotSpec{{StartHour: 6, DurationHours: 8}, {StartHour: 14, DurationHours: 8}, {StartHour: 22, DurationHours: 8}},
		}
	case model.AssetTypeComponent:
		// 任意一天以 70% 概率开工
		return SchedulePolicy{
			WorksOn: func(_ time.Weekday, rng *rand.Rand) bool { return rng.Float64() < 0.7 },
			Slots:   []SlotSpec{{StartHour: 9, DurationHours: 5}},
		}
	default:
		return SchedulePolicy{
			WorksOn: worksWeekdays,
			Slots:   []SlotSpec{{StartHour: 8, DurationHours: 6}},
		}
	}
}

// ── 资产类型基准参数表 ──

// BaseParams 生成事件的类型基准参数
type BaseParams struct {
	Quantity    int
	Rate        int // 件/小时
	StartupMin  int
	ShutdownMin int
}

// 启停之外的两段工序取固定默认值
const (
	defaultSetupMin  = 15
	defaultWrapupMin = 10
)

// BaseParamsFor 查询资产类型的基准参数
func BaseParamsFor(t model.AssetType) BaseParams {
	switch t {
	case model.AssetTypeTestingEquipment:
		return BaseParams{Quantity: 500, Rate: 100, StartupMin: 30, ShutdownMin: 20}
	case model.AssetTypePump:
		return BaseParams{Quantity: 800, Rate: 150, StartupMin: 20, ShutdownMin: 15}
	case model.AssetTypeCompressor:
		return BaseParams{Quantity: 1200, Rate: 200, StartupMin: 25, ShutdownMin: 20}
	case model.AssetTypeComponent:
		return BaseParams{Quantity: 300, Rate: 80, StartupMin: 15, ShutdownMin: 10}
	default:
		if t.IsSensorFamily() {
			return BaseParams{Quantity: 150, Rate: 50, StartupMin: 10, ShutdownMin: 10}
		}
		return BaseParams{Quantity: 400, Rate: 90, StartupMin: 20, ShutdownMin: 15}
	}
}

// ── 继承缩放系数表 ──

// InheritFactors 继承事件的类型缩放系数
// Startup 系数同时作用于 startup/shutdown，Setup 系数同时作用于 setup/wrapup
type InheritFactors struct {
	Rate     float64
	Quantity float64
	Startup  float64
	Setup    float64
}

// InheritFactorsFor 查询子资产类型的继承缩放系数
func InheritFactorsFor(t model.AssetType) InheritFactors {
	switch {
	case t.IsSensorFamily():
		return InheritFactors{Rate: 0.3, Quantity: 0.2, Startup: 0.5, Setup: 0.3}
	case t == model.AssetTypeComponent:
		return InheritFactors{Rate: 0.6, Quantity: 0.4, Startup: 0.7, Setup: 0.6}
	case t == model.AssetTypeTestingEquipment:
		return InheritFactors{Rate: 0.8, Quantity: 0.7, Startup: 0.9, Setup: 0.8}
	default:
		return InheritFactors{Rate: 0.5, Quantity: 0.3, Startup: 0.6, Setup: 0.5}
	}
}

// 逐级衰减因子：levelMultiplier = 0.8^(level-1)，仅作用于数量与产率
const levelAttenuation = 0.8

// [自证通过] internal/scheduler/policy.go
