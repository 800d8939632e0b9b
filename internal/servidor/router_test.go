package servidor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/KromaEnergia/api-apontamentos/internal/auth"
	"github.com/KromaEnergia/api-apontamentos/internal/consultor"
	"github.com/KromaEnergia/api-apontamentos/internal/memoria"
	"github.com/KromaEnergia/api-apontamentos/internal/utils"
	"github.com/KromaEnergia/api-apontamentos/internal/utils/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alertaFake struct {
	mu    sync.Mutex
	cnpjs []string
}

func (a *alertaFake) CNPJDuplicado(_ context.Context, cnpj string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cnpjs = append(a.cnpjs, cnpj)
}

type api struct {
	t      *testing.T
	h      http.Handler
	alerta *alertaFake
	token  string
}

var backends = map[string]func(t *testing.T) Repositorios{
	"memoria": func(t *testing.T) Repositorios {
		return RepositoriosEmMemoria(memoria.NewStore())
	},
	"sqlite": func(t *testing.T) Repositorios {
		nome := strings.ReplaceAll(t.Name(), "/", "_")
		database, err := db.ConnectSQLite("file:" + nome + "?mode=memory&cache=shared")
		require.NoError(t, err)
		require.NoError(t, db.Migrar(database))
		return RepositoriosGorm(database)
	},
}

func novaAPI(t *testing.T, repos Repositorios, authRequired bool) *api {
	t.Helper()
	a, err := auth.NovoAutenticador("segredo-de-teste", time.Hour)
	require.NoError(t, err)
	alerta := &alertaFake{}
	return &api{
		t:      t,
		alerta: alerta,
		h: NewRouter(Dependencias{
			Repos:        repos,
			Auth:         a,
			AuthRequired: authRequired,
			Alerta:       alerta,
			CORSOrigens:  []string{"http://localhost:5173"},
		}),
	}
}

func (a *api) fazer(metodo, caminho string, corpo any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if corpo != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(corpo))
	}
	req := httptest.NewRequest(metodo, caminho, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	return w
}

// criar faz o POST e devolve o id do registro criado
func (a *api) criar(caminho string, corpo any) uint {
	a.t.Helper()
	w := a.fazer(http.MethodPost, caminho, corpo)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.ID
}

func decodificar[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type erroResposta struct {
	Message string `json:"message"`
	Errors  []struct {
		Path string `json:"path"`
		Code string `json:"code"`
	} `json:"errors"`
}

func TestFluxoCompleto(t *testing.T) {
	for nome, novo := range backends {
		t.Run(nome, func(t *testing.T) {
			a := novaAPI(t, novo(t), false)

			clienteID := a.criar("/api/clients", map[string]any{"code": "C1", "name": "Kroma", "cnpj": "11.111.111/0001-11", "email": "contato@kroma.com"})
			outroID := a.criar("/api/clients", map[string]any{"code": "C2", "name": "Outra", "cnpj": "22", "email": "b@outra.com"})
			consultorID := a.criar("/api/consultants", map[string]any{"code": "K1", "name": "Ana", "password": "segura123"})
			tipoID := a.criar("/api/service-types", map[string]any{"code": "CONS", "description": "Consultoria"})
			servicoID := a.criar("/api/services", map[string]any{"code": "S1", "clientId": clienteID, "description": "Projeto X", "hourlyRate": "100", "serviceTypeId": tipoID})
			setorID := a.criar("/api/sectors", map[string]any{"code": "FIN", "clientId": clienteID, "description": "Financeiro"})

			w := a.fazer(http.MethodPost, "/api/time-entries", map[string]any{
				"date": "2024-03-15", "consultantId": consultorID, "clientId": clienteID, "serviceId": servicoID,
				"sectorId": setorID, "startTime": "09:00", "endTime": "17:00", "breakStartTime": "12:00", "breakEndTime": "13:00",
				"description": "Levantamento", "totalHours": 99, "totalValue": 99,
			})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			criado := decodificar[map[string]any](t, w)
			assert.Equal(t, 7.0, criado["totalHours"])
			assert.Equal(t, 700.0, criado["totalValue"])
			entradaID := uint(criado["id"].(float64))

			// serviço de outro cliente
			w = a.fazer(http.MethodPost, "/api/time-entries", map[string]any{
				"date": "2024-03-15", "consultantId": consultorID, "clientId": outroID, "serviceId": servicoID,
				"startTime": "09:00", "endTime": "10:00",
			})
			assert.Equal(t, http.StatusBadRequest, w.Code)

			// serviço inexistente
			w = a.fazer(http.MethodPost, "/api/time-entries", map[string]any{
				"date": "2024-03-15", "consultantId": consultorID, "clientId": clienteID, "serviceId": 999,
				"startTime": "09:00", "endTime": "10:00",
			})
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Service not found", decodificar[erroResposta](t, w).Message)

			// horário invertido zera
			w = a.fazer(http.MethodPost, "/api/time-entries", map[string]any{
				"date": "2024-04-01", "consultantId": consultorID, "clientId": clienteID, "serviceId": servicoID,
				"startTime": "14:00", "endTime": "13:00",
			})
			require.Equal(t, http.StatusCreated, w.Code)
			invertido := decodificar[map[string]any](t, w)
			assert.Equal(t, 0.0, invertido["totalHours"])
			assert.Equal(t, 0.0, invertido["totalValue"])

			// listagem detalhada do mês
			w = a.fazer(http.MethodGet, "/api/time-entries?month=3&year=2024", nil)
			require.Equal(t, http.StatusOK, w.Code)
			lista := decodificar[[]map[string]any](t, w)
			require.Len(t, lista, 1)
			assert.Equal(t, "Ana", lista[0]["consultant"].(map[string]any)["name"])
			assert.NotContains(t, w.Body.String(), "segura123")
			assert.NotContains(t, w.Body.String(), `"password"`)

			w = a.fazer(http.MethodGet, fmt.Sprintf("/api/time-entries/filtered?clientId=%d&startDate=2024-03-01", clienteID), nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, decodificar[[]map[string]any](t, w), 2)

			// update sem campo de cálculo não mexe nos totais
			w = a.fazer(http.MethodPut, fmt.Sprintf("/api/services/%d", servicoID), map[string]any{"hourlyRate": "200"})
			require.Equal(t, http.StatusOK, w.Code)
			w = a.fazer(http.MethodPut, fmt.Sprintf("/api/time-entries/%d", entradaID), map[string]any{"description": "Revisão"})
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, 700.0, decodificar[map[string]any](t, w)["totalValue"])

			w = a.fazer(http.MethodPut, fmt.Sprintf("/api/time-entries/%d", entradaID), map[string]any{"endTime": "18:00"})
			require.Equal(t, http.StatusOK, w.Code)
			atualizado := decodificar[map[string]any](t, w)
			assert.Equal(t, 8.0, atualizado["totalHours"])
			assert.Equal(t, 1600.0, atualizado["totalValue"])
			assert.Equal(t, "Revisão", atualizado["description"])

			// relatório e dashboard
			w = a.fazer(http.MethodGet, "/api/reports?startDate=2024-03-01&endDate=2024-03-31", nil)
			require.Equal(t, http.StatusOK, w.Code)
			rel := decodificar[map[string]any](t, w)
			assert.Equal(t, 1600.0, rel["totalValue"])
			assert.Equal(t, 1.0, rel["totalClients"])

			w = a.fazer(http.MethodGet, "/api/dashboard/stats?month=3&year=2024", nil)
			require.Equal(t, http.StatusOK, w.Code)
			stats := decodificar[map[string]any](t, w)
			assert.Equal(t, 2.0, stats["totalClients"])
			assert.Equal(t, 1.0, stats["activeConsultants"])
			assert.Equal(t, 8.0, stats["monthlyHours"])

			// faturamento
			w = a.fazer(http.MethodPost, "/api/billing/summary", map[string]any{"clientId": clienteID, "startDate": "2024-03-01", "endDate": "2024-03-31"})
			require.Equal(t, http.StatusOK, w.Code)
			fat := decodificar[map[string]any](t, w)
			grupos := fat["groups"].([]any)
			require.Len(t, grupos, 1)
			assert.Equal(t, "Consultoria", grupos[0].(map[string]any)["serviceType"])

			w = a.fazer(http.MethodPost, "/api/billing/generate-pdf", map[string]any{"clientId": clienteID, "startDate": "2024-03-01", "endDate": "2024-03-31", "reportType": "synthetic"})
			require.Equal(t, http.StatusOK, w.Code)
			assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

			// delete
			w = a.fazer(http.MethodDelete, fmt.Sprintf("/api/time-entries/%d", entradaID), nil)
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Empty(t, w.Body.String())
			w = a.fazer(http.MethodDelete, fmt.Sprintf("/api/time-entries/%d", entradaID), nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			w = a.fazer(http.MethodGet, fmt.Sprintf("/api/time-entries/%d", entradaID), nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestCodigoDuplicadoNaoCriaRegistro(t *testing.T) {
	for nome, novo := range backends {
		t.Run(nome, func(t *testing.T) {
			a := novaAPI(t, novo(t), false)
			a.criar("/api/clients", map[string]any{"code": "C1", "name": "Kroma", "cnpj": "11", "email": "a@kroma.com"})

			w := a.fazer(http.MethodPost, "/api/clients", map[string]any{"code": "C1", "name": "Outra", "cnpj": "22", "email": "b@b.com"})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "code", decodificar[erroResposta](t, w).Errors[0].Path)

			w = a.fazer(http.MethodPost, "/api/clients", map[string]any{"code": "C9", "name": "Outra", "cnpj": "11", "email": "b@b.com"})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, []string{"11"}, a.alerta.cnpjs)

			w = a.fazer(http.MethodGet, "/api/clients", nil)
			assert.Len(t, decodificar[[]map[string]any](t, w), 1)

			a.criar("/api/consultants", map[string]any{"code": "K1", "name": "Ana"})
			w = a.fazer(http.MethodPost, "/api/consultants", map[string]any{"code": "K1", "name": "Bia"})
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestValidacaoEIDs(t *testing.T) {
	for nome, novo := range backends {
		t.Run(nome, func(t *testing.T) {
			a := novaAPI(t, novo(t), false)

			w := a.fazer(http.MethodPost, "/api/time-entries", map[string]any{"date": "15/03/2024", "startTime": "9h"})
			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decodificar[erroResposta](t, w)
			assert.Equal(t, "Invalid data", body.Message)
			paths := map[string]bool{}
			for _, e := range body.Errors {
				paths[e.Path] = true
			}
			assert.True(t, paths["date"])
			assert.True(t, paths["startTime"])
			assert.True(t, paths["consultantId"])

			w = a.fazer(http.MethodGet, "/api/clients/abc", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			w = a.fazer(http.MethodGet, "/api/clients/42", nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Client not found", decodificar[erroResposta](t, w).Message)
			w = a.fazer(http.MethodPut, "/api/sectors/42", map[string]any{"description": "x"})
			assert.Equal(t, http.StatusNotFound, w.Code)
			w = a.fazer(http.MethodDelete, "/api/service-types/42", nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			w = a.fazer(http.MethodGet, "/api/time-entries?month=13&year=2024", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			w = a.fazer(http.MethodGet, "/api/nada", nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestListasPorCliente(t *testing.T) {
	for nome, novo := range backends {
		t.Run(nome, func(t *testing.T) {
			a := novaAPI(t, novo(t), false)
			c1 := a.criar("/api/clients", map[string]any{"code": "C1", "name": "A", "cnpj": "1", "email": "a@a.com"})
			c2 := a.criar("/api/clients", map[string]any{"code": "C2", "name": "B", "cnpj": "2", "email": "b@b.com"})
			a.criar("/api/services", map[string]any{"code": "S1", "clientId": c1, "description": "X", "hourlyRate": "10"})
			a.criar("/api/services", map[string]any{"code": "S2", "clientId": c2, "description": "Y", "hourlyRate": "20"})
			a.criar("/api/sectors", map[string]any{"code": "F1", "clientId": c1, "description": "Fin"})

			w := a.fazer(http.MethodGet, fmt.Sprintf("/api/services/by-client/%d", c1), nil)
			require.Equal(t, http.StatusOK, w.Code)
			servicos := decodificar[[]map[string]any](t, w)
			require.Len(t, servicos, 1)
			assert.Equal(t, "10.00", servicos[0]["hourlyRate"])

			w = a.fazer(http.MethodGet, fmt.Sprintf("/api/sectors/by-client/%d", c2), nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, decodificar[[]map[string]any](t, w))

			// serviço com cliente apagado some da listagem geral
			w = a.fazer(http.MethodDelete, fmt.Sprintf("/api/clients/%d", c2), nil)
			require.Equal(t, http.StatusNoContent, w.Code)
			w = a.fazer(http.MethodGet, "/api/services", nil)
			assert.Len(t, decodificar[[]map[string]any](t, w), 1)
		})
	}
}

func TestLoginEAutenticacao(t *testing.T) {
	for nome, novo := range backends {
		t.Run(nome, func(t *testing.T) {
			repos := novo(t)
			a := novaAPI(t, repos, true)

			// primeiro consultor entra direto pelo repositório
			hash, err := utils.HashSenha("segura123")
			require.NoError(t, err)
			require.NoError(t, repos.Consultores.Create(context.Background(), &consultor.Consultor{Codigo: "K1", Nome: "Ana", Senha: hash}))

			w := a.fazer(http.MethodGet, "/api/clients", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			w = a.fazer(http.MethodGet, "/healthz", nil)
			assert.Equal(t, http.StatusOK, w.Code)

			w = a.fazer(http.MethodPost, "/api/login", map[string]any{"code": "K1", "password": "errada"})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			w = a.fazer(http.MethodPost, "/api/login", map[string]any{"code": "K9", "password": "segura123"})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			w = a.fazer(http.MethodPost, "/api/login", map[string]any{"code": "K1"})
			assert.Equal(t, http.StatusBadRequest, w.Code)

			w = a.fazer(http.MethodPost, "/api/login", map[string]any{"code": "K1", "password": "segura123"})
			require.Equal(t, http.StatusOK, w.Code)
			a.token = decodificar[map[string]any](t, w)["token"].(string)

			w = a.fazer(http.MethodGet, "/api/clients", nil)
			assert.Equal(t, http.StatusOK, w.Code)

			w = a.fazer(http.MethodPost, "/api/consultants", map[string]any{"code": "K2", "name": "Bia"})
			require.Equal(t, http.StatusCreated, w.Code)
			temp := decodificar[map[string]any](t, w)["temporaryPassword"].(string)
			assert.Len(t, temp, 12)

			a.token = ""
			w = a.fazer(http.MethodPost, "/api/login", map[string]any{"code": "K2", "password": temp})
			require.Equal(t, http.StatusOK, w.Code)
			login := decodificar[map[string]any](t, w)
			assert.Equal(t, "Login realizado com sucesso", login["message"])
			assert.NotContains(t, login["consultant"], "password")

			a.token = login["token"].(string)
			w = a.fazer(http.MethodGet, "/api/me", nil)
			require.Equal(t, http.StatusOK, w.Code)
			me := decodificar[map[string]any](t, w)
			assert.Equal(t, "K2", me["code"])
			assert.Equal(t, true, me["mustResetPassword"])
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	a := novaAPI(t, RepositoriosEmMemoria(memoria.NewStore()), true)
	req := httptest.NewRequest(http.MethodOptions, "/api/clients", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricasERequestID(t *testing.T) {
	a := novaAPI(t, RepositoriosEmMemoria(memoria.NewStore()), false)
	w := a.fazer(http.MethodGet, "/api/clients", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = a.fazer(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/api/clients"`)
}
