package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBudgetFlow_TemplateItemsAndSummary(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "budget@test.com", "password123")

	// Step 1: Create a category
	rec := app.request("POST", "/api/v1/categories", `{"nombre":"Vivienda"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating category, got %d: %s", rec.Code, rec.Body.String())
	}
	catID := parseJSON(t, rec)["categoria"].(map[string]interface{})["id"].(float64)

	// Step 2: Create the monthly template
	rec = app.request("POST", "/api/v1/templates", `{"periodo":"2026-08"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating template, got %d: %s", rec.Code, rec.Body.String())
	}
	templateID := parseJSON(t, rec)["plantilla"].(map[string]interface{})["id"].(float64)

	// Step 3: Add two items
	rec = app.request("POST", "/api/v1/budget",
		fmt.Sprintf(`{"plantilla_id":%.0f,"categoria_id":%.0f,"nombre":"Renta","presupuestado":1200,"real":1200,"clasificacion":"Fijo","control":"Necesario"}`,
			templateID, catID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating item, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/budget",
		fmt.Sprintf(`{"plantilla_id":%.0f,"categoria_id":%.0f,"nombre":"Cine","presupuestado":100,"real":150,"clasificacion":"Discrecional","control":"Discrecional"}`,
			templateID, catID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating item, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 4: Read the budget back with its summary
	rec = app.request("GET", "/api/v1/budget?periodo=2026-08", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	items := result["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	resumen := result["resumen"].(map[string]interface{})
	if resumen["total_budgeted"].(float64) != 1300 {
		t.Errorf("expected total_budgeted=1300, got %v", resumen["total_budgeted"])
	}
	if resumen["total_actual"].(float64) != 1350 {
		t.Errorf("expected total_actual=1350, got %v", resumen["total_actual"])
	}
	if resumen["over_budget_count"].(float64) != 1 {
		t.Errorf("expected over_budget_count=1, got %v", resumen["over_budget_count"])
	}
}

func TestBudgetFlow_PartialPatchKeepsOtherFields(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "patch@test.com", "password123")

	rec := app.request("POST", "/api/v1/categories", `{"nombre":"Vivienda"}`, token)
	catID := parseJSON(t, rec)["categoria"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/v1/templates", `{"periodo":"2026-08"}`, token)
	templateID := parseJSON(t, rec)["plantilla"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/v1/budget",
		fmt.Sprintf(`{"plantilla_id":%.0f,"categoria_id":%.0f,"nombre":"Renta","presupuestado":1200,"clasificacion":"Fijo","control":"Necesario"}`,
			templateID, catID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	itemID := parseJSON(t, rec)["item"].(map[string]interface{})["id"].(float64)

	// Patch only the budgeted amount
	rec = app.request("PATCH", fmt.Sprintf("/api/v1/budget/%.0f", itemID), `{"presupuestado":500}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	item := parseJSON(t, rec)["item"].(map[string]interface{})
	if item["presupuestado"].(float64) != 500 {
		t.Errorf("expected presupuestado=500, got %v", item["presupuestado"])
	}
	if item["nombre"] != "Renta" {
		t.Errorf("expected nombre unchanged, got %v", item["nombre"])
	}
	if item["clasificacion"] != "Fijo" {
		t.Errorf("expected clasificacion unchanged, got %v", item["clasificacion"])
	}
}

func TestBudgetFlow_DuplicateTemplateRejected(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "duptemplate@test.com", "password123")

	rec := app.request("POST", "/api/v1/templates", `{"periodo":"2026-08"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = app.request("POST", "/api/v1/templates", `{"periodo":"2026-08"}`, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBudgetFlow_UnknownLookupRejectsItem(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "lookup@test.com", "password123")

	rec := app.request("POST", "/api/v1/categories", `{"nombre":"Vivienda"}`, token)
	catID := parseJSON(t, rec)["categoria"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/v1/templates", `{"periodo":"2026-08"}`, token)
	templateID := parseJSON(t, rec)["plantilla"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/v1/budget",
		fmt.Sprintf(`{"plantilla_id":%.0f,"categoria_id":%.0f,"nombre":"Renta","clasificacion":"Inventada"}`,
			templateID, catID), token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown classification, got %d: %s", rec.Code, rec.Body.String())
	}

	// No partial row was written
	rec = app.request("GET", "/api/v1/budget?periodo=2026-08", "", token)
	items := parseJSON(t, rec)["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("expected no items after rejected insert, got %d", len(items))
	}
}

func TestBudgetFlow_UsersCannotTouchEachOthersItems(t *testing.T) {
	app := setupApp(t)
	ownerToken, _ := app.registerUser(t, "owner@test.com", "password123")
	intruderToken, _ := app.registerUser(t, "intruder@test.com", "password123")

	rec := app.request("POST", "/api/v1/categories", `{"nombre":"Vivienda"}`, ownerToken)
	catID := parseJSON(t, rec)["categoria"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/v1/templates", `{"periodo":"2026-08"}`, ownerToken)
	templateID := parseJSON(t, rec)["plantilla"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/v1/budget",
		fmt.Sprintf(`{"plantilla_id":%.0f,"categoria_id":%.0f,"nombre":"Renta","presupuestado":1200}`,
			templateID, catID), ownerToken)
	itemID := parseJSON(t, rec)["item"].(map[string]interface{})["id"].(float64)

	// The intruder can neither patch nor delete the owner's item
	rec = app.request("PATCH", fmt.Sprintf("/api/v1/budget/%.0f", itemID), `{"presupuestado":1}`, intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on foreign patch, got %d", rec.Code)
	}
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/budget/%.0f", itemID), "", intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on foreign delete, got %d", rec.Code)
	}

	// The item is still there for the owner
	rec = app.request("GET", "/api/v1/budget?periodo=2026-08", "", ownerToken)
	items := parseJSON(t, rec)["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("expected the owner's item to survive, got %d items", len(items))
	}
}
