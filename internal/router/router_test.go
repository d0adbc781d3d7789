package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"equine-clinic/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userID   = "vet-user-1"
	clinicA  = "clinic-a"
	clinicB  = "clinic-b"
	fixedDay = "2024-03-14"
)

func TestHTTP_EndToEnd_ClinicalFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{DefaultClinicID: clinicA}))
	defer ts.Close()

	// 1) Ficha base: propietario, caballo, veterinario y evento
	ownerID := create(t, ts.URL, "/owners", clinicA, map[string]any{
		"name":  "Carlos Pérez",
		"email": "carlos@example.com",
	})
	horseID := create(t, ts.URL, "/horses", clinicA, map[string]any{
		"name":     "Relámpago",
		"breed":    "Criollo",
		"age":      7,
		"owner_id": ownerID,
	})
	vetID := create(t, ts.URL, "/veterinarians", clinicA, map[string]any{
		"name":      "Dra. Rivas",
		"specialty": "Cirugía",
	})
	eventID := create(t, ts.URL, "/events", clinicA, map[string]any{
		"name":       "Copa Valencia",
		"type":       "competencia",
		"start_date": fixedDay,
		"location":   "Valencia",
	})

	// 2) Historia con dos renglones: 50 + 35 => 85 / 13.6 / 98.6
	var history struct {
		ID               string  `json:"id"`
		NetTotal         float64 `json:"net_total"`
		Tax              float64 `json:"tax"`
		TotalWithTax     float64 `json:"total_with_tax"`
		InvoiceGenerated bool    `json:"invoice_generated"`
		InvoiceID        string  `json:"invoice_id"`
		EventID          string  `json:"event_id"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/histories", clinicA, map[string]any{
			"horse_id":        horseID,
			"veterinarian_id": vetID,
			"date":            fixedDay,
			"type":            "Revisión",
			"event_id":        eventID,
			"items": []map[string]any{
				{"description": "Consulta", "quantity": 1, "unit_price": 50},
				{"description": "Vacuna", "quantity": 1, "unit_price": 35},
			},
		})
		require.Equal(t, http.StatusCreated, st, string(body))
		require.NoError(t, json.Unmarshal(body, &history))
		assert.InDelta(t, 85.0, history.NetTotal, 1e-9)
		assert.InDelta(t, 13.6, history.Tax, 1e-9)
		assert.InDelta(t, 98.6, history.TotalWithTax, 1e-9)
		assert.False(t, history.InvoiceGenerated)
		assert.Equal(t, eventID, history.EventID)
	}

	// 3) Factura: el propietario sale del caballo y la historia queda marcada
	var invoice struct {
		ID           string  `json:"id"`
		Number       string  `json:"number"`
		OwnerID      string  `json:"owner_id"`
		HorseID      string  `json:"horse_id"`
		TotalWithTax float64 `json:"total_with_tax"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/invoices", clinicA, map[string]any{"history_id": history.ID})
		require.Equal(t, http.StatusCreated, st, string(body))
		require.NoError(t, json.Unmarshal(body, &invoice))
		assert.Equal(t, ownerID, invoice.OwnerID)
		assert.Equal(t, horseID, invoice.HorseID)
		assert.NotEmpty(t, invoice.Number)
		assert.InDelta(t, 98.6, invoice.TotalWithTax, 1e-9)

		st, body = doReq(t, ts.URL, "GET", "/histories/"+history.ID, clinicA, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		require.NoError(t, json.Unmarshal(body, &history))
		assert.True(t, history.InvoiceGenerated)
		assert.Equal(t, invoice.ID, history.InvoiceID)
	}

	// una historia ya facturada no admite otra factura
	{
		st, body := doReq(t, ts.URL, "POST", "/invoices", clinicA, map[string]any{"history_id": history.ID})
		assert.Equal(t, http.StatusBadRequest, st, string(body))
	}

	// 4) Cita del caballo
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments", clinicA, map[string]any{
			"horse_id": horseID,
			"date":     fixedDay,
			"time":     "10:30",
			"type":     "Control",
		})
		require.Equal(t, http.StatusCreated, st, string(body))
	}

	// 5) Dashboard y analítica responden
	for _, path := range []string{"/dashboard?date=" + fixedDay, "/analytics"} {
		st, body := doReq(t, ts.URL, "GET", path, clinicA, nil)
		assert.Equal(t, http.StatusOK, st, "%s: %s", path, string(body))
	}

	// 6) Otra clínica no ve los recursos
	{
		st, _ := doReq(t, ts.URL, "GET", "/horses/"+horseID, clinicB, nil)
		assert.Equal(t, http.StatusNotFound, st)
		st, _ = doReq(t, ts.URL, "GET", "/histories/"+history.ID, clinicB, nil)
		assert.Equal(t, http.StatusNotFound, st)
	}

	// 7) Borrar el evento desvincula la historia
	{
		st, body := doReq(t, ts.URL, "DELETE", "/events/"+eventID, clinicA, nil)
		require.Equal(t, http.StatusNoContent, st, string(body))

		st, body = doReq(t, ts.URL, "GET", "/histories/"+history.ID, clinicA, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		history.EventID = ""
		require.NoError(t, json.Unmarshal(body, &history))
		assert.Empty(t, history.EventID)
	}

	// 8) Borrar el caballo arrastra historias, facturas y citas
	{
		st, body := doReq(t, ts.URL, "DELETE", "/horses/"+horseID, clinicA, nil)
		require.Equal(t, http.StatusNoContent, st, string(body))

		for _, path := range []string{
			"/histories",
			"/invoices",
			"/appointments",
		} {
			st, body := doReq(t, ts.URL, "GET", path, clinicA, nil)
			require.Equal(t, http.StatusOK, st, "%s: %s", path, string(body))
			var items []map[string]any
			require.NoError(t, json.Unmarshal(body, &items))
			assert.Empty(t, items, path)
		}

		st, _ = doReq(t, ts.URL, "GET", "/invoices/"+invoice.ID, clinicA, nil)
		assert.Equal(t, http.StatusNotFound, st)
		st, _ = doReq(t, ts.URL, "GET", "/histories?horse_id="+horseID, clinicA, nil)
		assert.Equal(t, http.StatusNotFound, st)
	}

	// 9) Endpoints públicos
	{
		st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
		assert.Equal(t, http.StatusOK, st)

		st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
		require.Equal(t, http.StatusOK, st)
		assert.True(t, strings.Contains(string(body), "clinic_invoices_issued_total"))
	}
}

func TestHTTP_RequiresSession(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{DefaultClinicID: clinicA}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/horses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)
}

func TestHTTP_ValidationErrors(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{DefaultClinicID: clinicA}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/owners", clinicA, map[string]any{"email": "no-es-correo"})
	assert.Equal(t, http.StatusBadRequest, st, string(body))

	st, body = doReq(t, ts.URL, "POST", "/horses", clinicA, map[string]any{
		"name":     "Sin dueño",
		"owner_id": "no-existe",
	})
	assert.Equal(t, http.StatusBadRequest, st, string(body))

	st, body = doReq(t, ts.URL, "GET", "/dashboard?date=ayer", clinicA, nil)
	assert.Equal(t, http.StatusBadRequest, st, string(body))
}

func create(t *testing.T, baseURL, path, clinicID string, payload map[string]any) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", path, clinicID, payload)
	require.Equal(t, http.StatusCreated, st, "%s: %s", path, string(body))
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.ID)
	return out.ID
}

// doReq sin clinicID manda la request sin sesión.
func doReq(t *testing.T, baseURL, method, path, clinicID string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clinicID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
		req.Header.Set("X-Debug-Clinic-ID", clinicID)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}
