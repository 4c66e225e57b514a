package scheduler

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// ── 排程引擎业务错误 ──

var (
	ErrEventNotFound   = errors.New("生产事件不存在")
	ErrAssetNotFound   = errors.New("资产不存在")
	ErrProductNotFound = errors.New("产品不存在")
	ErrInvalidWindow   = errors.New("计划结束时间必须晚于开始时间")
	ErrInvalidSpec     = errors.New("计划数量与产率必须大于 0")
	ErrDragInProgress  = errors.New("已有拖拽会话进行中")
	ErrNoDragSession   = errors.New("当前无拖拽会话")
)

// Engine 排程引擎 — 资产/事件/班次集合的唯一属主
//
// 事件与班次只存在于内存，每次会话从生成器重建。除生成与继承外，
// 交互编辑只改动既有事件的时间字段。调用方一律经由引擎 API，
// 不直接接触集合；互斥锁把逻辑上的单线程会话落到并发 HTTP 之上。
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
	loc *time.Location

	windowDays int

	assets     []model.Asset
	assetIndex map[int]*model.Asset
	products   []model.Product
	prodIndex  map[int]*model.Product

	events      map[int64]*model.ProductionEvent
	shifts      map[shiftKey]*model.Shift
	shiftOf     map[int64]shiftKey // 事件 → 当前归属班次
	nextEventID int64

	drag *dragSession
}

// Config 引擎构造参数
type Config struct {
	Seed       int64          // 0 表示按当前时间取种
	WindowDays int            // 生成窗口天数，默认 14
	Location   *time.Location // 班次/日界时区，默认 time.Local
	Now        func() time.Time
}

// NewEngine 创建排程引擎并接管资产森林与产品目录（只读引用数据）
func NewEngine(assets []model.Asset, products []model.Product, cfg Config) *Engine {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 14
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = cfg.Now().UnixNano()
	}

	e := &Engine{
		rng:        rand.New(rand.NewSource(seed)),
		now:        cfg.Now,
		loc:        cfg.Location,
		windowDays: cfg.WindowDays,
		assets:     assets,
		assetIndex: make(map[int]*model.Asset),
		products:   products,
		prodIndex:  make(map[int]*model.Product),
		events:     make(map[int64]*model.ProductionEvent),
		shifts:     make(map[shiftKey]*model.Shift),
		shiftOf:    make(map[int64]shiftKey),
		// 事件 ID 以启动毫秒打底，进程内单调递增即可避免碰撞
		nextEventID: cfg.Now().UnixMilli(),
	}

	WalkPreOrder(e.assets, 0, func(a *model.Asset, _ int) {
		e.assetIndex[a.AssetID] = a
	})
	for i := range e.products {
		e.prodIndex[e.products[i].ProductID] = &e.products[i]
	}

	return e
}

// Reseed 重置随机源；配合 Generate 可复现任意一轮生成
func (e *Engine) Reseed(seed int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rng = rand.New(rand.NewSource(seed))
}

func (e *Engine) allocEventID() int64 {
	e.nextEventID++
	return e.nextEventID
}

// sortedEventIDs 按 ID 升序返回事件键，保证扫描与列表顺序确定
func (e *Engine) sortedEventIDs() []int64 {
	ids := make([]int64, 0, len(e.events))
	for id := range e.events {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ── 只读访问 ──

// Assets 资产森林（副本语义由调用方自律：参考数据只读）
func (e *Engine) Assets() []model.Asset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.assets
}

// Asset 按 ID 查询资产节点（含子树；引用数据只读）
func (e *Engine) Asset(id int) (model.Asset, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.assetIndex[id]
	if !ok {
		return model.Asset{}, false
	}
	return *a, true
}

// FlattenedAssets 带继承层级的先序扁平化资产列表
func (e *Engine) FlattenedAssets() []AssetNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Flatten(e.assets)
}

// Products 产品目录
func (e *Engine) Products() []model.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.products
}

// Event 按 ID 查询事件（返回副本）
func (e *Engine) Event(id int64) (*model.ProductionEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ev, ok := e.events[id]
	if !ok {
		return nil, false
	}
	return ev.Clone(), true
}

// EventFilter 事件列表过滤条件
type EventFilter struct {
	AssetIDs []int
	From     time.Time
	To       time.Time
}

// Events 按过滤条件返回事件副本，ID 升序
func (e *Engine) Events(f EventFilter) []model.ProductionEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	assetSet := make(map[int]bool, len(f.AssetIDs))
	for _, id := range f.AssetIDs {
		assetSet[id] = true
	}

	var out []model.ProductionEvent
	for _, id := range e.sortedEventIDs() {
		ev := e.events[id]
		if len(assetSet) > 0 && !assetSet[ev.AssetID] {
			continue
		}
		if !f.From.IsZero() && !ev.PlannedEnd.After(f.From) {
			continue
		}
		if !f.To.IsZero() && !ev.PlannedStart.Before(f.To) {
			continue
		}
		out = append(out, *ev.Clone())
	}
	return out
}

// ShiftFilter 班次列表过滤条件
type ShiftFilter struct {
	AssetID int       // 0 表示不过滤
	Date    time.Time // 零值表示不过滤
}

// Shifts 按过滤条件返回班次副本，按 (日期, 资产, 窗口起始) 排序
func (e *Engine) Shifts(f ShiftFilter) []model.Shift {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shiftsLocked(f)
}

func (e *Engine) shiftsLocked(f ShiftFilter) []model.Shift {
	var out []model.Shift
	for _, sh := range e.shifts {
		if f.AssetID != 0 && sh.AssetID != f.AssetID {
			continue
		}
		if !f.Date.IsZero() && !sh.Date.Equal(truncateToDay(f.Date, e.loc)) {
			continue
		}
		cp := *sh
		cp.EventIDs = append([]int64(nil), sh.EventIDs...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].AssetID != out[j].AssetID {
			return out[i].AssetID < out[j].AssetID
		}
		return shiftOrder(out[i].Window) < shiftOrder(out[j].Window)
	})
	return out
}

func shiftOrder(w model.ShiftWindow) int {
	switch w {
	case model.ShiftWindowDay:
		return 0
	case model.ShiftWindowEvening:
		return 1
	default:
		return 2
	}
}

// FindOverlap 查询资产上与 [start,end) 重叠的首个事件（副本），无冲突返回 nil
func (e *Engine) FindOverlap(assetID int, start, end time.Time) *model.ProductionEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ev := e.findOverlap(assetID, start, end, 0); ev != nil {
		return ev.Clone()
	}
	return nil
}

// ── 事件生命周期 ──

// EventSpec 手动创建/编辑事件的输入
type EventSpec struct {
	ProductID   int
	AssetID     int
	Quantity    int
	Rate        int
	StartupMin  int
	SetupMin    int
	ShutdownMin int
	WrapupMin   int
	Start       time.Time
	End         time.Time
	Status      model.EventStatus // 空则默认 Planned
}

func (e *Engine) validateSpec(spec EventSpec) error {
	if _, ok := e.assetIndex[spec.AssetID]; !ok {
		return ErrAssetNotFound
	}
	if _, ok := e.prodIndex[spec.ProductID]; !ok {
		return ErrProductNotFound
	}
	if spec.Quantity <= 0 || spec.Rate <= 0 {
		return ErrInvalidSpec
	}
	if !spec.End.After(spec.Start) {
		return ErrInvalidWindow
	}
	return nil
}

// CreateEvent 创建根事件：校验 → 冲突门禁 → 入集合 → 班次归口 → 向下继承
// 冲突时整个操作中止，集合无部分变更
func (e *Engine) CreateEvent(spec EventSpec) (*model.ProductionEvent, *PropagationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateSpec(spec); err != nil {
		return nil, nil, err
	}
	if conflict := e.findOverlap(spec.AssetID, spec.Start, spec.End, 0); conflict != nil {
		return nil, nil, &ConflictError{Conflicting: *conflict.Clone()}
	}

	status := spec.Status
	if status == "" {
		status = model.EventStatusPlanned
	}

	ev := &model.ProductionEvent{
		EventID:         e.allocEventID(),
		ProductID:       spec.ProductID,
		AssetID:         spec.AssetID,
		PlannedQuantity: spec.Quantity,
		PlannedRate:     spec.Rate,
		StartupMin:      spec.StartupMin,
		SetupMin:        spec.SetupMin,
		ShutdownMin:     spec.ShutdownMin,
		WrapupMin:       spec.WrapupMin,
		PlannedStart:    spec.Start,
		PlannedEnd:      spec.End,
		Status:          status,
	}
	ev.ProductionTimeMin = productionTime(ev)

	e.events[ev.EventID] = ev
	e.assignToShift(ev)

	prop := e.propagate(ev)
	return ev.Clone(), prop, nil
}

// UpdateEvent 编辑事件：同创建校验，冲突门禁排除自身；
// 非继承事件编辑后重新向下继承（删旧建新，子级手工改动随之丢弃）
func (e *Engine) UpdateEvent(id int64, spec EventSpec) (*model.ProductionEvent, *PropagationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, ok := e.events[id]
	if !ok {
		return nil, nil, ErrEventNotFound
	}
	if err := e.validateSpec(spec); err != nil {
		return nil, nil, err
	}
	if conflict := e.findOverlap(spec.AssetID, spec.Start, spec.End, id); conflict != nil {
		return nil, nil, &ConflictError{Conflicting: *conflict.Clone()}
	}

	ev.ProductID = spec.ProductID
	ev.AssetID = spec.AssetID
	ev.PlannedQuantity = spec.Quantity
	ev.PlannedRate = spec.Rate
	ev.StartupMin = spec.StartupMin
	ev.SetupMin = spec.SetupMin
	ev.ShutdownMin = spec.ShutdownMin
	ev.WrapupMin = spec.WrapupMin
	ev.PlannedStart = spec.Start
	ev.PlannedEnd = spec.End
	if spec.Status != "" {
		ev.Status = spec.Status
	}
	ev.ProductionTimeMin = productionTime(ev)

	e.assignToShift(ev)

	var prop *PropagationResult
	if !ev.IsInherited {
		prop = e.repropagate(ev)
	}
	return ev.Clone(), prop, nil
}

// DeleteEvent 删除事件；根事件级联删除其全部继承子级，返回删除总数
func (e *Engine) DeleteEvent(id int64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, ok := e.events[id]
	if !ok {
		return 0, ErrEventNotFound
	}

	removed := 0
	if !ev.IsInherited {
		removed += e.deleteChildren(id)
	}
	e.removeEvent(ev)
	removed++
	return removed, nil
}

// removeEvent 从集合与班次归属中移除单个事件；调用方需持有锁
func (e *Engine) removeEvent(ev *model.ProductionEvent) {
	if key, ok := e.shiftOf[ev.EventID]; ok {
		e.removeFromShift(ev.EventID, key)
	}
	delete(e.events, ev.EventID)
}

// Recompute 全量重算派生字段（净生产时间、班次聚合）
// 启动后的延迟重算与夜间窗口滚动任务都会调用；幂等
func (e *Engine) Recompute() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ev := range e.events {
		ev.ProductionTimeMin = productionTime(ev)
	}
	for _, sh := range e.shifts {
		e.recomputeShift(sh)
	}
}

// productionTime 净生产时间 = max(15, 窗口分钟数 − 四段工序之和)
func productionTime(ev *model.ProductionEvent) int {
	pt := ev.DurationMinutes() - ev.OverheadMinutes()
	if pt < 15 {
		pt = 15
	}
	return pt
}

func truncateToDay(t time.Time, loc *time.Location) time.Time {
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// [自证通过] internal/scheduler/engine.go
