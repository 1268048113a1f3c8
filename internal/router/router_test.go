package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"livestock-records/internal/adapters/storage/memory"
	"livestock-records/internal/router"
)

type animalBody struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Summary  struct {
		CurrentWeight    *float64 `json:"current_weight"`
		TotalGain        *float64 `json:"total_gain"`
		AverageDailyGain *float64 `json:"average_daily_gain"`
		OffspringCount   int      `json:"offspring_count"`
	} `json:"summary"`
	Weights []struct {
		UID  string  `json:"uid"`
		Date string  `json:"date"`
		Kg   float64 `json:"kg"`
	} `json:"weights"`
	Vaccinations []struct {
		UID            string `json:"uid"`
		WithdrawalDays *int   `json:"withdrawal_days"`
	} `json:"vaccinations"`
}

func TestHTTP_EndToEnd_WeightsAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	createAnimal(t, ts.URL, map[string]any{
		"id":           "A1",
		"birth_date":   "2023-01-01",
		"breed":        "Angus",
		"entry_weight": 200,
		"category":     "ternera",
	})

	// se cargan desordenadas: el store las ordena por fecha
	addWeight(t, ts.URL, "A1", "2023-03-01", 225.456)
	a := addWeight(t, ts.URL, "A1", "2023-02-01", 210)

	if len(a.Weights) != 2 || a.Weights[0].Date != "2023-02-01" || a.Weights[1].Kg != 225.46 {
		t.Fatalf("unexpected weights: %+v", a.Weights)
	}

	st, body := doReq(t, ts.URL, "GET", "/animals/A1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get animal, got %d body=%s", st, string(body))
	}
	var got animalBody
	_ = json.Unmarshal(body, &got)

	if got.Summary.CurrentWeight == nil || *got.Summary.CurrentWeight != 225.46 {
		t.Fatalf("expected current weight 225.46, got %v", got.Summary.CurrentWeight)
	}
	if got.Summary.TotalGain == nil || *got.Summary.TotalGain != 25.46 {
		t.Fatalf("expected total gain 25.46, got %v", got.Summary.TotalGain)
	}
	if got.Summary.AverageDailyGain == nil || *got.Summary.AverageDailyGain != 0.552 {
		t.Fatalf("expected adg 0.552, got %v", got.Summary.AverageDailyGain)
	}

	// borrar la primera pesada por uid
	st, body = doReq(t, ts.URL, "DELETE", "/animals/A1/weights/"+got.Weights[0].UID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 remove weight, got %d body=%s", st, string(body))
	}
	_ = json.Unmarshal(body, &got)
	if len(got.Weights) != 1 || got.Weights[0].Date != "2023-03-01" {
		t.Fatalf("unexpected weights after remove: %+v", got.Weights)
	}
	if got.Summary.AverageDailyGain != nil {
		t.Fatalf("expected no adg with a single reading, got %v", *got.Summary.AverageDailyGain)
	}

	// uid inexistente => 404
	st, _ = doReq(t, ts.URL, "DELETE", "/animals/A1/weights/nope", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown uid, got %d", st)
	}
}

func TestHTTP_CreateValidationAndDuplicates(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	createAnimal(t, ts.URL, map[string]any{"id": "A1", "birth_date": "2023-01-01", "breed": "Angus", "entry_weight": 180})

	st, _ := doReq(t, ts.URL, "POST", "/animals", map[string]any{"id": "A1", "birth_date": "2023-01-01", "breed": "Hereford", "entry_weight": 180})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate id, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/animals", map[string]any{"id": "A2", "birth_date": "01/02/2023", "breed": "Angus", "entry_weight": 180})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 bad birth date, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/animals", map[string]any{"id": "A3", "birth_date": "2023-01-01", "breed": "Angus", "entry_weight": -1})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 negative entry weight, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/animals", map[string]any{"id": "A4", "birth_date": "2023-01-01", "breed": "Angus"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 missing entry weight, got %d", st)
	}
	st, _ = doRaw(t, ts.URL, "POST", "/animals", `{"id":"A5","birth_date":"2023-01-01","breed":"Angus","entry_weight":null}`)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 null entry weight, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "POST", "/animals", map[string]any{"id": "A6", "birth_date": "2023-01-01", "breed": "Angus", "entry_weight": 0})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 explicit zero entry weight, got %d", st)
	}

	st, _ = doRaw(t, ts.URL, "POST", "/animals", "{not json")
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid json, got %d", st)
	}
}

func TestHTTP_UpdateAndDelete(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	createAnimal(t, ts.URL, map[string]any{"id": "A1", "birth_date": "2023-01-01", "breed": "Angus", "entry_weight": 180})

	st, body := doReq(t, ts.URL, "PUT", "/animals/A1", map[string]any{
		"birth_date":   "2023-01-02",
		"breed":        "Angus",
		"entry_weight": 180,
		"category":     "vaquillona",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
	}
	var got animalBody
	_ = json.Unmarshal(body, &got)
	if got.ID != "A1" || got.Category != "vaquillona" {
		t.Fatalf("unexpected update result: %+v", got)
	}

	st, _ = doReq(t, ts.URL, "PUT", "/animals/ZZ", map[string]any{"birth_date": "2023-01-02", "breed": "Angus", "entry_weight": 180})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 update unknown, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "PUT", "/animals/A1", map[string]any{"birth_date": "2023-01-02", "breed": "Angus"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 update without entry weight, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "DELETE", "/animals/A1", nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "GET", "/animals/A1", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "DELETE", "/animals/A1", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 on repeated delete, got %d", st)
	}
}

func TestHTTP_ListFiltersAndSortsByRawID(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	for _, a := range []map[string]any{
		{"id": "2", "birth_date": "2023-01-01", "breed": "Angus", "entry_weight": 180},
		{"id": "10", "birth_date": "2023-01-01", "breed": "Hereford", "entry_weight": 180},
		{"id": "B7", "birth_date": "2023-01-01", "breed": "Brangus", "entry_weight": 180},
	} {
		createAnimal(t, ts.URL, a)
	}

	ids := listIDs(t, ts.URL, "")
	if strings.Join(ids, ",") != "10,2,B7" {
		t.Fatalf("expected lexicographic order, got %v", ids)
	}

	ids = listIDs(t, ts.URL, "ANGUS")
	if strings.Join(ids, ",") != "2,B7" {
		t.Fatalf("expected angus/brangus, got %v", ids)
	}
}

func TestHTTP_SubRecords(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	createAnimal(t, ts.URL, map[string]any{"id": "V1", "birth_date": "2021-05-01", "breed": "Angus", "entry_weight": 180})

	st, _ := doReq(t, ts.URL, "POST", "/animals/V1/illnesses", map[string]any{
		"date": "2023-04-01", "diagnosis": "Neumonía", "treatment_name": "Oxitetraciclina",
		"dose": "10ml", "start": "2023-04-05", "end": "2023-04-02",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 end before start, got %d", st)
	}

	st, body := doReq(t, ts.URL, "POST", "/animals/V1/illnesses", map[string]any{
		"date": "2023-04-01", "diagnosis": "Neumonía", "treatment_name": "Oxitetraciclina",
		"dose": "10ml", "start": "2023-04-01", "end": "2023-04-05",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 add illness, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/animals/V1/vaccinations", map[string]any{
		"date": "2023-06-01", "name": "Aftosa", "lot": "L-22", "dose": "2ml", "withdrawal_days": 30,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 add vaccination, got %d body=%s", st, string(body))
	}
	var got animalBody
	_ = json.Unmarshal(body, &got)
	if len(got.Vaccinations) != 1 || got.Vaccinations[0].WithdrawalDays == nil || *got.Vaccinations[0].WithdrawalDays != 30 {
		t.Fatalf("unexpected vaccinations: %+v", got.Vaccinations)
	}

	st, body = doReq(t, ts.URL, "POST", "/animals/V1/offspring", map[string]any{"id": "C-1", "birth_date": "2023-09-10"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 add offspring, got %d body=%s", st, string(body))
	}
	_ = json.Unmarshal(body, &got)
	if got.Summary.OffspringCount != 1 {
		t.Fatalf("expected offspring count 1, got %d", got.Summary.OffspringCount)
	}

	st, _ = doReq(t, ts.URL, "POST", "/animals/NOPE/weights", map[string]any{"date": "2023-01-01", "kg": 100})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 weight for unknown animal, got %d", st)
	}
}

func TestHTTP_ExportImport(t *testing.T) {
	repo := memory.NewDocumentRepo()
	ts := httptest.NewServer(router.NewRouter(router.Options{Repository: repo}))
	defer ts.Close()

	createAnimal(t, ts.URL, map[string]any{"id": "A1", "birth_date": "2023-01-01", "breed": "Angus", "entry_weight": 200})
	addWeight(t, ts.URL, "A1", "2023-02-01", 210)

	res, err := http.Get(ts.URL + "/export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	exported, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 export, got %d", res.StatusCode)
	}
	cd := res.Header.Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="ganado-`) || !strings.HasSuffix(cd, `.json"`) {
		t.Fatalf("unexpected content-disposition: %q", cd)
	}
	if !bytes.Contains(exported, []byte(`"pesoIngreso": 200`)) {
		t.Fatalf("expected persisted field names in export, got %s", string(exported))
	}

	// sin confirmación no se toca nada
	st, _ := doRaw(t, ts.URL, "POST", "/import", string(exported))
	if st != http.StatusPreconditionFailed {
		t.Fatalf("expected 412 without confirm, got %d", st)
	}

	st, _ = doRaw(t, ts.URL, "POST", "/import?confirm=true", `{"id":"A1"}`)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 malformed document, got %d", st)
	}
	st, _ = doRaw(t, ts.URL, "POST", "/import?confirm=true", `[{"raza":"Angus"}]`)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 record without id, got %d", st)
	}
	if ids := listIDs(t, ts.URL, ""); len(ids) != 1 {
		t.Fatalf("failed imports must not touch the store, got %v", ids)
	}

	st, body := doRaw(t, ts.URL, "POST", "/import?confirm=true", `[{"id":"B1","nacimiento":"2022-01-01","raza":"Hereford"},{"id":"B2"}]`)
	if st != http.StatusOK {
		t.Fatalf("expected 200 import, got %d body=%s", st, string(body))
	}
	if ids := listIDs(t, ts.URL, ""); strings.Join(ids, ",") != "B1,B2" {
		t.Fatalf("import must replace the store, got %v", ids)
	}

	// un router nuevo sobre el mismo repo ve lo importado
	ts2 := httptest.NewServer(router.NewRouter(router.Options{Repository: repo}))
	defer ts2.Close()
	if ids := listIDs(t, ts2.URL, ""); strings.Join(ids, ",") != "B1,B2" {
		t.Fatalf("expected persisted import, got %v", ids)
	}

	st, _ = doReq(t, ts2.URL, "DELETE", "/animals", nil)
	if st != http.StatusPreconditionFailed {
		t.Fatalf("expected 412 clear without confirm, got %d", st)
	}
	st, _ = doReq(t, ts2.URL, "DELETE", "/animals?confirm=true", nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 clear, got %d", st)
	}
	if ids := listIDs(t, ts2.URL, ""); len(ids) != 0 {
		t.Fatalf("expected empty store, got %v", ids)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %s", st, string(body))
	}

	createAnimal(t, ts.URL, map[string]any{"id": "A1", "birth_date": "2023-01-01", "breed": "Angus", "entry_weight": 180})

	st, body = doReq(t, ts.URL, "GET", "/metrics", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(string(body), "livestock_animals 1") {
		t.Fatalf("expected animals gauge, got:\n%s", string(body))
	}
	if !strings.Contains(string(body), `livestock_http_requests_total{code="201",method="POST",route="/animals`) {
		t.Fatalf("expected request counter by route, got:\n%s", string(body))
	}
}

func createAnimal(t *testing.T, baseURL string, payload map[string]any) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}
}

func addWeight(t *testing.T, baseURL, animalID, date string, kg float64) animalBody {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals/"+animalID+"/weights", map[string]any{"date": date, "kg": kg})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 add weight, got %d body=%s", st, string(body))
	}
	var a animalBody
	_ = json.Unmarshal(body, &a)
	return a
}

func listIDs(t *testing.T, baseURL, q string) []string {
	t.Helper()

	path := "/animals"
	if q != "" {
		path += "?q=" + q
	}
	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
	}

	var items []animalBody
	_ = json.Unmarshal(body, &items)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var raw string
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		raw = string(b)
	}
	return doRaw(t, baseURL, method, path, raw)
}

func doRaw(t *testing.T, baseURL, method, path, raw string) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if raw != "" {
		rdr = strings.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if raw != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
