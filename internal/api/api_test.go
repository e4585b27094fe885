// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/quarrylabs/materium/internal/auth"
	"github.com/quarrylabs/materium/internal/catalog"
	"github.com/quarrylabs/materium/internal/compare"
	"github.com/quarrylabs/materium/internal/config"
	"github.com/quarrylabs/materium/internal/database"
	"github.com/quarrylabs/materium/internal/logging"
	"github.com/quarrylabs/materium/internal/models"
	"github.com/quarrylabs/materium/internal/recommend"
	"github.com/quarrylabs/materium/internal/recommend/algorithms"
)

const testSecret = "api-test-secret-0123456789-0123456789"

type testServer struct {
	handler http.Handler
	db      *database.DB
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.New(database.Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	bdb, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("opening badger: %v", err)
	}
	t.Cleanup(func() { _ = bdb.Close() })

	cat := catalog.New()
	cfg := recommend.DefaultConfig()
	engine, err := recommend.NewEngine(cat,
		algorithms.NewCriteria(),
		algorithms.NewKNN(),
		algorithms.NewRidge(cfg.RidgeLambda, cfg.MinRatings),
		cfg)
	if err != nil {
		t.Fatalf("building engine: %v", err)
	}
	if err := engine.Train(context.Background(), nil); err != nil {
		t.Fatalf("training engine: %v", err)
	}

	jwt, err := auth.NewJWTManager(auth.Config{JWTSecret: testSecret, TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("building jwt manager: %v", err)
	}
	authSvc := auth.NewService(db, jwt)
	cmpStore := compare.NewStore(bdb, cat, compare.DefaultConfig())

	handler := NewHandler(cat, engine, db, authSvc, cmpStore)
	router := NewRouter(handler, jwt, config.ServerConfig{})

	return &testServer{handler: router.Setup(), db: db}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding envelope: %v (body: %s)", err, rec.Body.String())
	}
	return resp
}

// registerAndLogin creates an account and returns a session token.
func (ts *testServer) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "supersecret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "supersecret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

func TestHealthz(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Status != "success" {
		t.Errorf("status = %q", resp.Status)
	}
	data := resp.Data.(map[string]interface{})
	if data["status"] != "ok" {
		t.Errorf("health status = %v", data["status"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	ts := setupTestServer(t)

	// Protected endpoint without a token.
	rec := ts.do(t, http.MethodGet, "/api/v1/materials", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d", rec.Code)
	}

	token := ts.registerAndLogin(t, "builder_amy")

	rec = ts.do(t, http.MethodGet, "/api/v1/materials", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d: %s", rec.Code, rec.Body.String())
	}

	// Duplicate registration.
	rec = ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "builder_amy",
		"email":    "amy2@example.com",
		"password": "supersecret",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d", rec.Code)
	}

	// Wrong password.
	rec = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "builder_amy",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d", rec.Code)
	}
}

func TestRegister_Validation(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "x",
		"email":    "not-an-email",
		"password": "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Error == nil || resp.Error.Code != models.ErrCodeValidation {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestMaterials(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	rec := ts.do(t, http.MethodGet, "/api/v1/materials", token, nil)
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	if data["count"].(float64) != 15 {
		t.Errorf("count = %v", data["count"])
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/materials?type=concrete", token, nil)
	data = decodeEnvelope(t, rec).Data.(map[string]interface{})
	if data["count"].(float64) != 2 {
		t.Errorf("concrete count = %v", data["count"])
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/materials/1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("material 1 status = %d", rec.Code)
	}
	data = decodeEnvelope(t, rec).Data.(map[string]interface{})
	if _, ok := data["supplier"]; !ok {
		t.Error("material detail should include supplier")
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/materials/999", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown material status = %d", rec.Code)
	}
}

func TestSimilarMaterials(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	rec := ts.do(t, http.MethodGet, "/api/v1/materials/1/similar?k=3", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	similar := data["similar"].([]interface{})
	if len(similar) != 3 {
		t.Fatalf("similar count = %d", len(similar))
	}
	for _, entry := range similar {
		m := entry.(map[string]interface{})["material"].(map[string]interface{})
		if m["id"].(float64) == 1 {
			t.Error("similar results include the probe material")
		}
	}
}

func TestSuppliers(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	rec := ts.do(t, http.MethodGet, "/api/v1/suppliers", token, nil)
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	if data["count"].(float64) != 15 {
		t.Errorf("supplier count = %v", data["count"])
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/suppliers?region=Midwest", token, nil)
	data = decodeEnvelope(t, rec).Data.(map[string]interface{})
	if data["count"].(float64) != 3 {
		t.Errorf("midwest supplier count = %v", data["count"])
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/suppliers/999", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown supplier status = %d", rec.Code)
	}
}

func TestRecommendations(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	body := map[string]interface{}{
		"spec": map[string]interface{}{
			"applications":         []string{"Foundation"},
			"min_strength_mpa":     30,
			"min_durability_years": 50,
		},
		"k": 5,
	}
	rec := ts.do(t, http.MethodPost, "/api/v1/recommendations", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	results := data["results"].([]interface{})
	if len(results) == 0 || len(results) > 5 {
		t.Fatalf("results count = %d", len(results))
	}

	// Descending scores, ranks start at 1.
	prev := 2.0
	for i, raw := range results {
		entry := raw.(map[string]interface{})
		score := entry["score"].(float64)
		if score > prev {
			t.Errorf("results not sorted at index %d", i)
		}
		prev = score
		if int(entry["rank"].(float64)) != i+1 {
			t.Errorf("rank at index %d = %v", i, entry["rank"])
		}
	}

	// Second identical query is served from cache.
	rec = ts.do(t, http.MethodPost, "/api/v1/recommendations", token, body)
	resp := decodeEnvelope(t, rec)
	if !resp.Metadata.Cached {
		t.Error("repeat query should be cached")
	}
}

func TestProjectLifecycleOverHTTP(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	create := map[string]interface{}{
		"name": "Lakehouse",
		"spec": map[string]interface{}{"min_strength_mpa": 30},
	}
	rec := ts.do(t, http.MethodPost, "/api/v1/projects", token, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	project := decodeEnvelope(t, rec).Data.(map[string]interface{})["project"].(map[string]interface{})
	projectID := int64(project["id"].(float64))

	rec = ts.do(t, http.MethodGet, "/api/v1/projects", token, nil)
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	if data["count"].(float64) != 1 {
		t.Errorf("project count = %v", data["count"])
	}

	// Recommend and persist against the project.
	rec = ts.do(t, http.MethodPost, "/api/v1/recommendations", token, map[string]interface{}{
		"spec":       map[string]interface{}{"min_strength_mpa": 30},
		"project_id": projectID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("recommend status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/recommendations", projectID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("saved recommendations status = %d", rec.Code)
	}
	data = decodeEnvelope(t, rec).Data.(map[string]interface{})
	if data["count"].(float64) == 0 {
		t.Error("no persisted recommendations")
	}

	// Update, then delete.
	rec = ts.do(t, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", projectID), token, map[string]interface{}{
		"name": "Lakehouse v2",
		"spec": map[string]interface{}{"min_strength_mpa": 45},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}

	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/projects/%d", projectID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", projectID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted project status = %d", rec.Code)
	}
}

func TestProjectIsolationBetweenUsers(t *testing.T) {
	ts := setupTestServer(t)
	amy := ts.registerAndLogin(t, "builder_amy")
	bob := ts.registerAndLogin(t, "builder_bob")

	rec := ts.do(t, http.MethodPost, "/api/v1/projects", amy, map[string]interface{}{
		"name": "Private",
		"spec": map[string]interface{}{},
	})
	project := decodeEnvelope(t, rec).Data.(map[string]interface{})["project"].(map[string]interface{})
	projectID := int64(project["id"].(float64))

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", projectID), bob, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user project read status = %d", rec.Code)
	}
}

func TestRatings(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	rec := ts.do(t, http.MethodPost, "/api/v1/ratings", token, map[string]interface{}{
		"material_id": 1,
		"rating":      4.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("rating status = %d: %s", rec.Code, rec.Body.String())
	}

	// Out of range.
	rec = ts.do(t, http.MethodPost, "/api/v1/ratings", token, map[string]interface{}{
		"material_id": 1,
		"rating":      6,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("out-of-range rating status = %d", rec.Code)
	}

	// Unknown material.
	rec = ts.do(t, http.MethodPost, "/api/v1/ratings", token, map[string]interface{}{
		"material_id": 999,
		"rating":      3,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown material rating status = %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/ratings", token, nil)
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	if data["count"].(float64) != 1 {
		t.Errorf("rating count = %v", data["count"])
	}
}

func TestCompareOverHTTP(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	for _, id := range []int{1, 3, 7} {
		rec := ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/compare/%d", id), token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("add %d status = %d: %s", id, rec.Code, rec.Body.String())
		}
	}

	rec := ts.do(t, http.MethodGet, "/api/v1/compare", token, nil)
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	if data["count"].(float64) != 3 {
		t.Errorf("compare count = %v", data["count"])
	}
	if len(data["materials"].([]interface{})) != 3 {
		t.Error("compare list missing material records")
	}

	// Fill to capacity, then overflow.
	for _, id := range []int{2, 4} {
		ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/compare/%d", id), token, nil)
	}
	rec = ts.do(t, http.MethodPost, "/api/v1/compare/5", token, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("overflow status = %d", rec.Code)
	}

	rec = ts.do(t, http.MethodDelete, "/api/v1/compare/3", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove status = %d", rec.Code)
	}

	rec = ts.do(t, http.MethodDelete, "/api/v1/compare", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
	rec = ts.do(t, http.MethodGet, "/api/v1/compare", token, nil)
	data = decodeEnvelope(t, rec).Data.(map[string]interface{})
	if data["count"].(float64) != 0 {
		t.Errorf("count after clear = %v", data["count"])
	}
}

func TestChartRadar(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	rec := ts.do(t, http.MethodGet, "/api/v1/charts/radar?ids=1,3", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	axes := data["axes"].([]interface{})
	series := data["series"].([]interface{})
	if len(series) != 2 {
		t.Fatalf("series count = %d", len(series))
	}
	for _, raw := range series {
		values := raw.(map[string]interface{})["values"].([]interface{})
		if len(values) != len(axes) {
			t.Errorf("series length %d != axes length %d", len(values), len(axes))
		}
		for _, v := range values {
			f := v.(float64)
			if f < 0 || f > 10 {
				t.Errorf("axis value %v out of range", f)
			}
		}
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/charts/radar", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing ids status = %d", rec.Code)
	}
	rec = ts.do(t, http.MethodGet, "/api/v1/charts/radar?ids=999", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d", rec.Code)
	}
}

func TestChartScores(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	rec := ts.do(t, http.MethodPost, "/api/v1/projects", token, map[string]interface{}{
		"name": "Deck",
		"spec": map[string]interface{}{"min_durability_years": 20},
	})
	project := decodeEnvelope(t, rec).Data.(map[string]interface{})["project"].(map[string]interface{})
	projectID := int64(project["id"].(float64))

	ts.do(t, http.MethodPost, "/api/v1/recommendations", token, map[string]interface{}{
		"spec":       map[string]interface{}{"min_durability_years": 20},
		"project_id": projectID,
	})

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/charts/scores?project_id=%d", projectID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	labels := data["labels"].([]interface{})
	scores := data["scores"].([]interface{})
	if len(labels) == 0 || len(labels) != len(scores) {
		t.Errorf("labels %d, scores %d", len(labels), len(scores))
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/charts/scores", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing project_id status = %d", rec.Code)
	}
}

func TestETagHeader(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/healthz", "", nil)
	if rec.Header().Get("ETag") == "" {
		t.Error("response missing ETag")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID")
	}
}

func TestSaveRating_RetrainLoadFailureIsLogged(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	rec := ts.do(t, http.MethodPost, "/api/v1/projects", token, map[string]interface{}{
		"name": "Shed",
		"spec": map[string]interface{}{},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating project: status = %d", rec.Code)
	}
	project := decodeEnvelope(t, rec).Data.(map[string]interface{})["project"].(map[string]interface{})
	projectID := int(project["id"].(float64))

	// Corrupt the stored spec so the training join cannot decode it.
	_, err := ts.db.Conn().ExecContext(context.Background(),
		`UPDATE projects SET spec_json = '{' WHERE id = ?`, projectID)
	if err != nil {
		t.Fatalf("corrupting spec_json: %v", err)
	}

	var logBuf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&logBuf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	rec = ts.do(t, http.MethodPost, "/api/v1/ratings", token, map[string]interface{}{
		"material_id": 1,
		"rating":      4,
		"project_id":  projectID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("rating status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(logBuf.String(), "loading ratings for retrain failed") {
		t.Errorf("expected a retrain-load warning, log output: %s", logBuf.String())
	}
}

func TestChartCosts(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "builder_amy")

	rec := ts.do(t, http.MethodGet, "/api/v1/charts/costs?ids=3,1,2&area=50", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	if data["area"].(float64) != 50 {
		t.Errorf("area = %v, want 50", data["area"])
	}

	entries := data["entries"].([]interface{})
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Cheapest first: material 1 (110/unit), 2 (180/unit), 3 (2000/unit).
	wantOrder := []float64{1, 2, 3}
	wantTotals := []float64{5500, 9000, 100000}
	prev := -1.0
	for i, e := range entries {
		entry := e.(map[string]interface{})
		if entry["material_id"].(float64) != wantOrder[i] {
			t.Errorf("entries[%d].material_id = %v, want %v", i, entry["material_id"], wantOrder[i])
		}
		total := entry["total_cost"].(float64)
		if total != wantTotals[i] {
			t.Errorf("entries[%d].total_cost = %v, want %v", i, total, wantTotals[i])
		}
		if total < prev {
			t.Error("entries not sorted by total cost")
		}
		prev = total
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/charts/costs", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing ids status = %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/charts/costs?ids=1&area=-5", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative area status = %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/charts/costs?ids=999", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown material status = %d", rec.Code)
	}
}
