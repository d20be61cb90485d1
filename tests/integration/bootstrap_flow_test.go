package integration

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestBootstrapFlow_RegisterProvisionsHousehold(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerMember(t, "claudio@test.com")

	// The household exists and is reachable right after registration.
	rec := app.request("GET", "/api/v1/household", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Seeded wallets.
	rec = app.request("GET", "/api/v1/wallets", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var wallets []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &wallets); err != nil {
		t.Fatalf("failed to parse wallets: %v", err)
	}
	if len(wallets) != 4 {
		t.Errorf("expected 4 seeded wallets, got %d", len(wallets))
	}
	names := map[string]bool{}
	for _, w := range wallets {
		names[w["name"].(string)] = true
		if w["currency"] != "EUR" {
			t.Errorf("wallet %v: expected EUR", w["name"])
		}
	}
	for _, want := range []string{"Conto famiglia", "Carta Claudio", "Carta Partner", "Contanti"} {
		if !names[want] {
			t.Errorf("missing seeded wallet %q", want)
		}
	}

	// Seeded categories.
	rec = app.request("GET", "/api/v1/categories", "", token)
	var categories []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("failed to parse categories: %v", err)
	}
	if len(categories) != 5 {
		t.Errorf("expected 5 seeded categories, got %d", len(categories))
	}
}

func TestBootstrapFlow_LoginIsIdempotentCheckpoint(t *testing.T) {
	app := setupApp(t)

	app.registerMember(t, "idem@test.com")

	// Logging in twice must not create more households or duplicate seeds.
	for i := 0; i < 2; i++ {
		rec := app.request("POST", "/api/v1/auth/login", `{"email":"idem@test.com","password":"password123"}`, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	var households int64
	if err := app.DB.Table("households").Count(&households).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if households != 1 {
		t.Errorf("expected 1 household, got %d", households)
	}

	var wallets int64
	if err := app.DB.Table("wallets").Count(&wallets).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if wallets != 4 {
		t.Errorf("expected 4 wallets, got %d", wallets)
	}
}

func TestBootstrapFlow_JoinByInvite(t *testing.T) {
	app := setupApp(t)

	ownerToken, _ := app.registerMember(t, "owner@test.com")

	rec := app.request("POST", "/api/v1/household/invites", "", ownerToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create invite failed: %d %s", rec.Code, rec.Body.String())
	}
	code := parseJSON(t, rec)["code"].(string)

	partnerToken, _ := app.joinHousehold(t, "partner@test.com", code)

	// Both see the same household members.
	rec = app.request("GET", "/api/v1/household/members", "", partnerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("members failed: %d %s", rec.Code, rec.Body.String())
	}
	var members []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &members); err != nil {
		t.Fatalf("failed to parse members: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("expected 2 members, got %d", len(members))
	}

	// Only one household and one seed set exist.
	var households int64
	if err := app.DB.Table("households").Count(&households).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if households != 1 {
		t.Errorf("expected 1 household, got %d", households)
	}
}
