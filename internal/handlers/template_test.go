package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/deraza/internal/database"
	"github.com/example/deraza/internal/models"
	"github.com/example/deraza/internal/services"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A second pooled connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("underlying db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	templates := NewTemplateHandler(db)
	orders := NewOrderHandler(db, services.NewOrderService(db, nil))

	api := app.Group("/api")
	api.Get("/templates", templates.ListTemplates)
	api.Post("/templates", templates.CreateTemplate)
	api.Get("/templates/:id", templates.GetTemplate)
	api.Put("/templates/:id", templates.UpdateTemplate)
	api.Delete("/templates/:id", templates.DeleteTemplate)
	api.Get("/templates/:id/sections", templates.ListSections)
	api.Post("/orders/window", orders.CreateWindowOrder)
	api.Post("/orders/door", orders.CreateDoorOrder)
	api.Get("/orders/products/:id", orders.GetOrder)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("response not successful")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func templatePayload() map[string]interface{} {
	return map[string]interface{}{
		"name":              "Standart",
		"kind":              models.TemplateKindWindow,
		"base_width_mm":     1000,
		"base_height_mm":    1500,
		"base_price_per_m2": 200,
		"sections": []map[string]interface{}{
			{"section_kind": models.SectionKindWhole, "section_order": 0, "orientation": models.OrientationVertical, "width_ratio": 1.0},
		},
	}
}

func TestCreateTemplate(t *testing.T) {
	app, db := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/templates", templatePayload())
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status want 201 got %d", resp.StatusCode)
	}

	var created models.Template
	decodeData(t, resp, &created)
	if created.Kind != models.TemplateKindWindow {
		t.Fatalf("kind want WINDOW got %s", created.Kind)
	}
	if len(created.Sections) != 1 {
		t.Fatalf("sections want 1 got %d", len(created.Sections))
	}

	var count int64
	db.Model(&models.TemplateSection{}).Count(&count)
	if count != 1 {
		t.Fatalf("persisted sections want 1 got %d", count)
	}
}

func TestCreateTemplateStoresGlassFlag(t *testing.T) {
	app, db := setupApp(t)

	payload := templatePayload()
	payload["sections"] = []map[string]interface{}{
		{"section_kind": models.SectionKindWhole, "section_order": 0, "orientation": models.OrientationVertical, "width_ratio": 1.0, "has_glass": false},
	}
	resp := doJSON(t, app, http.MethodPost, "/api/templates", payload)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status want 201 got %d", resp.StatusCode)
	}
	var created models.Template
	decodeData(t, resp, &created)

	var stored models.TemplateSection
	if err := db.First(&stored, "template_id = ?", created.ID).Error; err != nil {
		t.Fatalf("reload section: %v", err)
	}
	if stored.HasGlass {
		t.Fatalf("has_glass false must survive the insert")
	}
}

func TestCreateUnnamedTemplatesDontCollide(t *testing.T) {
	app, _ := setupApp(t)

	payload := templatePayload()
	delete(payload, "name")
	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/templates", payload)
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("unnamed template %d: status want 201 got %d", i, resp.StatusCode)
		}
	}
}

func TestCreateTemplateRejectsBadPayload(t *testing.T) {
	app, _ := setupApp(t)

	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"bad kind", func(p map[string]interface{}) { p["kind"] = "GATE" }},
		{"zero width", func(p map[string]interface{}) { p["base_width_mm"] = 0 }},
		{"negative price", func(p map[string]interface{}) { p["base_price_per_m2"] = -1 }},
		{"duplicate section order", func(p map[string]interface{}) {
			p["sections"] = []map[string]interface{}{
				{"section_order": 0, "orientation": models.OrientationVertical, "width_ratio": 0.5},
				{"section_order": 0, "orientation": models.OrientationVertical, "width_ratio": 0.5},
			}
		}},
		{"ratio above one", func(p map[string]interface{}) {
			p["sections"] = []map[string]interface{}{
				{"section_order": 0, "orientation": models.OrientationVertical, "width_ratio": 1.5},
			}
		}},
		{"bad orientation", func(p map[string]interface{}) {
			p["sections"] = []map[string]interface{}{
				{"section_order": 0, "orientation": "DIAGONAL", "width_ratio": 0.5},
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := templatePayload()
			tc.mutate(payload)
			resp := doJSON(t, app, http.MethodPost, "/api/templates", payload)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("status want 400 got %d", resp.StatusCode)
			}
		})
	}
}

func TestListSectionsOrdered(t *testing.T) {
	app, _ := setupApp(t)

	payload := templatePayload()
	payload["sections"] = []map[string]interface{}{
		{"section_order": 2, "orientation": models.OrientationHorizontal, "height_ratio": 0.25},
		{"section_order": 0, "orientation": models.OrientationHorizontal, "height_ratio": 0.5},
		{"section_order": 1, "orientation": models.OrientationHorizontal, "height_ratio": 0.25},
	}
	resp := doJSON(t, app, http.MethodPost, "/api/templates", payload)
	var created models.Template
	decodeData(t, resp, &created)

	resp = doJSON(t, app, http.MethodGet, "/api/templates/"+created.ID.String()+"/sections", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status want 200 got %d", resp.StatusCode)
	}
	var sections []models.TemplateSection
	decodeData(t, resp, &sections)
	if len(sections) != 3 {
		t.Fatalf("sections want 3 got %d", len(sections))
	}
	for i, sec := range sections {
		if sec.SectionOrder != i {
			t.Fatalf("position %d holds section_order %d", i, sec.SectionOrder)
		}
	}
}

func TestCreateWindowOrder(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/templates", templatePayload())
	var tpl models.Template
	decodeData(t, resp, &tpl)

	resp = doJSON(t, app, http.MethodPost, "/api/orders/window", map[string]interface{}{
		"template":  tpl.ID.String(),
		"width_mm":  1200,
		"height_mm": 1800,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status want 201 got %d", resp.StatusCode)
	}

	var order models.ProductOrder
	decodeData(t, resp, &order)
	if !order.TotalPrice.Equal(decimal.RequireFromString("432")) {
		t.Fatalf("total want 432 got %s", order.TotalPrice)
	}
	if len(order.Sections) != 1 || order.Sections[0].WidthMM != 1200 {
		t.Fatalf("unexpected sections %+v", order.Sections)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/orders/products/"+order.ID.String(), nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status want 200 got %d", resp.StatusCode)
	}
}

func TestCreateDoorOrderRejectsWindowTemplate(t *testing.T) {
	app, db := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/templates", templatePayload())
	var tpl models.Template
	decodeData(t, resp, &tpl)

	resp = doJSON(t, app, http.MethodPost, "/api/orders/door", map[string]interface{}{
		"template":  tpl.ID.String(),
		"width_mm":  900,
		"height_mm": 2100,
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status want 400 got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.ProductOrder{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected order must not persist, found %d", count)
	}
}

func TestCreateWindowOrderUnknownTemplate(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/orders/window", map[string]interface{}{
		"template":  "2e9b7a0e-64bb-43cf-bc06-7af9ffe0e7a1",
		"width_mm":  1000,
		"height_mm": 1000,
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status want 404 got %d", resp.StatusCode)
	}
}
