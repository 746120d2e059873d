package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"medicine-reminder/internal/router"
)

func TestHTTP_EndToEnd_ReminderFlow(t *testing.T) {
	ts := httptest.NewServer(router.New(router.Options{}))
	defer ts.Close()

	// 1) Alta de usuario
	userID := createUser(t, ts.URL, "Ava", "10")
	if userID != "1" {
		t.Fatalf("expected first user id 1, got %s", userID)
	}

	// 2) Validaciones de alta
	{
		st, body := doReq(t, ts.URL, "POST", "/users", map[string]any{"name": "", "age": "20"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 empty name, got %d body=%s", st, body)
		}
		st, _ = doReq(t, ts.URL, "POST", "/users", map[string]any{"name": "Bob", "age": "abc"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 non-numeric age, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/users", map[string]any{"name": "Bob", "age": "-1"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 negative age, got %d", st)
		}
	}

	// 3) Registrar medicamento con la hora actual (cae en ventana due)
	doseTime := time.Now().Format("15:04")
	medID := createMedicine(t, ts.URL, userID, "Vitamin D", []string{doseTime})

	// horas desordenadas se guardan ordenadas
	{
		st, body := doReq(t, ts.URL, "POST", "/users/"+userID+"/medicines", map[string]any{
			"name": "Iron", "dosage": "10mg", "frequency": "daily",
			"times": []string{"09:00", "07:30", "20:00"},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", st, body)
		}
		var resp struct {
			Times []string `json:"times"`
		}
		_ = json.Unmarshal(body, &resp)
		if strings.Join(resp.Times, ",") != "07:30,09:00,20:00" {
			t.Fatalf("expected sorted times, got %v", resp.Times)
		}
	}

	// hora inválida => 400 nombrando el valor
	{
		st, body := doReq(t, ts.URL, "POST", "/users/"+userID+"/medicines", map[string]any{
			"name": "Bad", "dosage": "1", "frequency": "daily", "times": []string{"25:99"},
		})
		if st != http.StatusBadRequest || !strings.Contains(string(body), "25:99") {
			t.Fatalf("expected 400 naming 25:99, got %d body=%s", st, body)
		}
	}

	// usuario inexistente => 404
	{
		st, _ := doReq(t, ts.URL, "POST", "/users/99/medicines", map[string]any{
			"name": "X", "dosage": "1", "frequency": "daily", "times": []string{"08:00"},
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown user, got %d", st)
		}
	}

	// 4) Recordatorio pendiente y en ventana
	{
		rems := listReminders(t, ts.URL)
		rem := findReminder(t, rems, "Vitamin D", doseTime)
		if rem.Status != "pending" {
			t.Fatalf("expected pending, got %s", rem.Status)
		}
		if !rem.Due {
			t.Fatalf("expected due=true at schedule time")
		}
		if rem.Band.Name != "Purple" {
			t.Fatalf("expected Purple band for age 10, got %s", rem.Band.Name)
		}
	}

	// 5) Marcar tomado, dos veces (idempotente)
	{
		st, body := doReq(t, ts.URL, "POST", "/users/"+userID+"/medicines/"+medID+"/taken", map[string]any{"time": doseTime})
		if st != http.StatusOK {
			t.Fatalf("expected 200 mark taken, got %d body=%s", st, body)
		}
		st, body = doReq(t, ts.URL, "POST", "/users/"+userID+"/medicines/"+medID+"/taken", map[string]any{"time": doseTime})
		if st != http.StatusOK {
			t.Fatalf("expected 200 on repeat mark, got %d body=%s", st, body)
		}

		var resp struct {
			Taken map[string]bool `json:"taken"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Taken) != 1 {
			t.Fatalf("expected one taken entry after double mark, got %v", resp.Taken)
		}
	}

	// hora no programada => 404
	{
		st, _ := doReq(t, ts.URL, "POST", "/users/"+userID+"/medicines/"+medID+"/taken", map[string]any{"time": "03:33"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unscheduled time, got %d", st)
		}
	}

	// 6) El recordatorio pasa a taken
	{
		rems := listReminders(t, ts.URL)
		rem := findReminder(t, rems, "Vitamin D", doseTime)
		if rem.Status != "taken" {
			t.Fatalf("expected taken after marking, got %s", rem.Status)
		}
	}

	// 7) Borrar usuario: cascada y 404 al repetir
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/users/"+userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete user, got %d", st)
		}
		if rems := listReminders(t, ts.URL); len(rems) != 0 {
			t.Fatalf("expected no reminders after cascade delete, got %d", len(rems))
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/users/"+userID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
	}
}

func TestHTTP_DeleteUnknownUser_LeavesStateUntouched(t *testing.T) {
	ts := httptest.NewServer(router.New(router.Options{}))
	defer ts.Close()

	userID := createUser(t, ts.URL, "Ava", "10")
	createMedicine(t, ts.URL, userID, "Vitamin D", []string{"08:00"})
	createMedicine(t, ts.URL, userID, "Iron", []string{"09:00"})

	st, _ := doReq(t, ts.URL, "DELETE", "/users/42", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}

	if rems := listReminders(t, ts.URL); len(rems) != 2 {
		t.Fatalf("expected both reminders intact, got %d", len(rems))
	}
}

func TestHTTP_JSONFileStorePersistsAcrossRouters(t *testing.T) {
	dir := t.TempDir()

	ts := httptest.NewServer(router.New(router.Options{DataDir: dir}))
	userID := createUser(t, ts.URL, "Ava", "10")
	createMedicine(t, ts.URL, userID, "Vitamin D", []string{"08:00"})
	ts.Close()

	// mismo directorio, proceso "nuevo"
	ts2 := httptest.NewServer(router.New(router.Options{DataDir: dir}))
	defer ts2.Close()

	rems := listReminders(t, ts2.URL)
	if len(rems) != 1 {
		t.Fatalf("expected state to survive restart, got %d reminders", len(rems))
	}
	if rems[0].Medicine != "Vitamin D" {
		t.Fatalf("unexpected reminder after restart: %#v", rems[0])
	}
}

func TestHTTP_CorruptedStoreIsServerErrorNotNotFound(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	ts := httptest.NewServer(router.New(router.Options{DataDir: dir}))
	defer ts.Close()

	// las mutaciones que pasan por el chequeo de existencia también
	// reportan 500: un archivo corrupto no es un 404
	st, body := doReq(t, ts.URL, "DELETE", "/users/1", nil)
	if st != http.StatusInternalServerError {
		t.Fatalf("DELETE with corrupted store: expected 500, got %d body=%s", st, body)
	}

	st, body = doReq(t, ts.URL, "POST", "/users/1/medicines", map[string]any{
		"name": "Vitamin D", "dosage": "500IU", "frequency": "daily", "times": []string{"08:00"},
	})
	if st != http.StatusInternalServerError {
		t.Fatalf("POST medicines with corrupted store: expected 500, got %d body=%s", st, body)
	}

	st, body = doReq(t, ts.URL, "GET", "/reminders", nil)
	if st != http.StatusInternalServerError {
		t.Fatalf("GET /reminders with corrupted store: expected 500, got %d body=%s", st, body)
	}
}

func TestHTTP_CorruptedMedicinesFileOnTakenRoute(t *testing.T) {
	dir := t.TempDir()

	ts := httptest.NewServer(router.New(router.Options{DataDir: dir}))
	defer ts.Close()

	userID := createUser(t, ts.URL, "Ava", "10")
	medID := createMedicine(t, ts.URL, userID, "Vitamin D", []string{"08:00"})

	if err := os.WriteFile(filepath.Join(dir, "medicines.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt medicines file: %v", err)
	}

	st, body := doReq(t, ts.URL, "POST", "/users/"+userID+"/medicines/"+medID+"/taken", map[string]any{"time": "08:00"})
	if st != http.StatusInternalServerError {
		t.Fatalf("mark taken with corrupted store: expected 500, got %d body=%s", st, body)
	}
}

func TestHTTP_CoachEndpoints(t *testing.T) {
	// sin generator: los planes responden el mensaje fijo, el BMI funciona igual
	ts := httptest.NewServer(router.New(router.Options{}))
	defer ts.Close()

	{
		st, body := doReq(t, ts.URL, "POST", "/coach/bmi", map[string]any{"height_cm": 170, "weight_kg": 65})
		if st != http.StatusOK {
			t.Fatalf("expected 200 bmi, got %d body=%s", st, body)
		}
		var resp struct {
			BMI      float64 `json:"bmi"`
			Category string  `json:"category"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Category != "normal" {
			t.Fatalf("expected normal, got %s (bmi=%.2f)", resp.Category, resp.BMI)
		}
	}

	{
		st, _ := doReq(t, ts.URL, "POST", "/coach/bmi", map[string]any{"height_cm": 0, "weight_kg": 65})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for zero height, got %d", st)
		}
	}

	{
		st, body := doReq(t, ts.URL, "POST", "/coach/plans", map[string]any{
			"kind": "workout",
			"profile": map[string]any{
				"name": "Ana", "age": 30, "height_cm": 165, "weight_kg": 60,
			},
		})
		if st != http.StatusBadGateway {
			t.Fatalf("expected 502 without generator, got %d body=%s", st, body)
		}
		if !strings.Contains(string(body), "unavailable") {
			t.Fatalf("expected the fixed unavailable message, got %s", body)
		}
	}
}

// -------------------------
// Helpers
// -------------------------

type reminderDTO struct {
	UserID     string `json:"user_id"`
	User       string `json:"user"`
	MedicineID string `json:"medicine_id"`
	Medicine   string `json:"medicine"`
	Dosage     string `json:"dosage"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	Due        bool   `json:"due"`
	Band       struct {
		Name string `json:"name"`
	} `json:"band"`
}

func createUser(t *testing.T, baseURL, name, age string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/users", map[string]any{"name": name, "age": age})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create user, got %d body=%s", st, body)
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create user: missing id body=%s", body)
	}
	return resp.ID
}

func createMedicine(t *testing.T, baseURL, userID, name string, times []string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/users/"+userID+"/medicines", map[string]any{
		"name":      name,
		"dosage":    "500IU",
		"frequency": "daily",
		"times":     times,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create medicine, got %d body=%s", st, body)
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create medicine: missing id body=%s", body)
	}
	return resp.ID
}

func listReminders(t *testing.T, baseURL string) []reminderDTO {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/reminders", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 reminders, got %d body=%s", st, body)
	}

	var out []reminderDTO
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode reminders: %v body=%s", err, body)
	}
	return out
}

func findReminder(t *testing.T, rems []reminderDTO, medicine, timeStr string) reminderDTO {
	t.Helper()

	for _, r := range rems {
		if r.Medicine == medicine && r.Time == timeStr {
			return r
		}
	}
	t.Fatalf("reminder %s@%s not found in %#v", medicine, timeStr, rems)
	return reminderDTO{}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
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
