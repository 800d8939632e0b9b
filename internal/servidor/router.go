package servidor

import (
	"net/http"

	"github.com/KromaEnergia/api-apontamentos/internal/apontamento"
	"github.com/KromaEnergia/api-apontamentos/internal/auth"
	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
	"github.com/KromaEnergia/api-apontamentos/internal/consultor"
	"github.com/KromaEnergia/api-apontamentos/internal/faturamento"
	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/KromaEnergia/api-apontamentos/internal/memoria"
	"github.com/KromaEnergia/api-apontamentos/internal/middleware"
	"github.com/KromaEnergia/api-apontamentos/internal/relatorio"
	"github.com/KromaEnergia/api-apontamentos/internal/servico"
	"github.com/KromaEnergia/api-apontamentos/internal/setor"
	"github.com/KromaEnergia/api-apontamentos/internal/tiposervico"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// Repositorios é a fronteira única de acesso a dados, injetada nos handlers
type Repositorios struct {
	Clientes     cliente.Repository
	Consultores  consultor.Repository
	TiposServico tiposervico.Repository
	Servicos     servico.Repository
	Setores      setor.Repository
	Apontamentos apontamento.Repository
}

func RepositoriosEmMemoria(st *memoria.Store) Repositorios {
	return Repositorios{
		Clientes:     st.Clientes(),
		Consultores:  st.Consultores(),
		TiposServico: st.TiposServico(),
		Servicos:     st.Servicos(),
		Setores:      st.Setores(),
		Apontamentos: st.Apontamentos(),
	}
}

func RepositoriosGorm(db *gorm.DB) Repositorios {
	return Repositorios{
		Clientes:     cliente.NewRepository(db),
		Consultores:  consultor.NewRepository(db),
		TiposServico: tiposervico.NewRepository(db),
		Servicos:     servico.NewRepository(db),
		Setores:      setor.NewRepository(db),
		Apontamentos: apontamento.NewRepository(db),
	}
}

type Dependencias struct {
	Repos        Repositorios
	Auth         *auth.Autenticador
	AuthRequired bool
	Alerta       cliente.Alertador
	Metricas     *middleware.Metricas
	LimiteLogin  *middleware.LimitePorIP
	CORSOrigens  []string
}

// NewRouter monta as rotas. Caminhos fixos (/filtered, /billing, /by-client) são
// registrados antes de /{id}.
func NewRouter(d Dependencias) http.Handler {
	if d.Metricas == nil {
		d.Metricas = middleware.NovasMetricas()
	}
	if d.LimiteLogin == nil {
		d.LimiteLogin = middleware.NovoLimitePorMinuto(0)
	}

	clienteHandler := cliente.NewHandler(d.Repos.Clientes, d.Alerta)
	consultorHandler := consultor.NewHandler(d.Repos.Consultores, d.Auth)
	tipoHandler := tiposervico.NewHandler(d.Repos.TiposServico)
	servicoHandler := servico.NewHandler(d.Repos.Servicos, d.Repos.Clientes, d.Repos.TiposServico)
	setorHandler := setor.NewHandler(d.Repos.Setores, d.Repos.Clientes)
	apontamentoHandler := apontamento.NewHandler(d.Repos.Apontamentos)
	relatorioHandler := relatorio.NewHandler(d.Repos.Apontamentos, d.Repos.Clientes)
	faturamentoHandler := faturamento.NewHandler(d.Repos.Apontamentos, d.Repos.Clientes)

	r := mux.NewRouter()
	r.Use(d.Metricas.Middleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusNotFound, map[string]string{"message": "Route not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method not allowed"})
	})

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", d.Metricas.Handler()).Methods("GET")

	// Rotas públicas
	r.Handle("/api/login", d.LimiteLogin.Limitar(http.HandlerFunc(consultorHandler.Login))).Methods("POST")
	r.Handle("/api/me", d.Auth.Middleware(http.HandlerFunc(consultorHandler.Me))).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	if d.AuthRequired {
		api.Use(d.Auth.Middleware)
	}

	// Rotas de clientes
	api.HandleFunc("/clients", clienteHandler.ListarClientes).Methods("GET")
	api.HandleFunc("/clients", clienteHandler.CriarCliente).Methods("POST")
	api.HandleFunc("/clients/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clients/{id}", clienteHandler.AtualizarCliente).Methods("PUT")
	api.HandleFunc("/clients/{id}", clienteHandler.DeletarCliente).Methods("DELETE")

	// Rotas de consultores
	api.HandleFunc("/consultants", consultorHandler.ListarConsultores).Methods("GET")
	api.HandleFunc("/consultants", consultorHandler.CriarConsultor).Methods("POST")
	api.HandleFunc("/consultants/{id}", consultorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/consultants/{id}", consultorHandler.AtualizarConsultor).Methods("PUT")
	api.HandleFunc("/consultants/{id}", consultorHandler.DeletarConsultor).Methods("DELETE")

	// Rotas de tipos de serviço
	api.HandleFunc("/service-types", tipoHandler.ListarTipos).Methods("GET")
	api.HandleFunc("/service-types", tipoHandler.CriarTipo).Methods("POST")
	api.HandleFunc("/service-types/{id}", tipoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/service-types/{id}", tipoHandler.AtualizarTipo).Methods("PUT")
	api.HandleFunc("/service-types/{id}", tipoHandler.DeletarTipo).Methods("DELETE")

	// Rotas de serviços
	api.HandleFunc("/services", servicoHandler.ListarServicos).Methods("GET")
	api.HandleFunc("/services", servicoHandler.CriarServico).Methods("POST")
	api.HandleFunc("/services/by-client/{clientId}", servicoHandler.ListarPorCliente).Methods("GET")
	api.HandleFunc("/services/{id}", servicoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/services/{id}", servicoHandler.AtualizarServico).Methods("PUT")
	api.HandleFunc("/services/{id}", servicoHandler.DeletarServico).Methods("DELETE")

	// Rotas de setores
	api.HandleFunc("/sectors", setorHandler.ListarSetores).Methods("GET")
	api.HandleFunc("/sectors", setorHandler.CriarSetor).Methods("POST")
	api.HandleFunc("/sectors/by-client/{clientId}", setorHandler.ListarPorCliente).Methods("GET")
	api.HandleFunc("/sectors/{id}", setorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/sectors/{id}", setorHandler.AtualizarSetor).Methods("PUT")
	api.HandleFunc("/sectors/{id}", setorHandler.DeletarSetor).Methods("DELETE")

	// Rotas de apontamentos
	api.HandleFunc("/time-entries", apontamentoHandler.ListarApontamentos).Methods("GET")
	api.HandleFunc("/time-entries", apontamentoHandler.CriarApontamento).Methods("POST")
	api.HandleFunc("/time-entries/filtered", apontamentoHandler.ListarFiltrados).Methods("GET")
	api.HandleFunc("/time-entries/billing", apontamentoHandler.ListarParaFaturamento).Methods("GET")
	api.HandleFunc("/time-entries/{id}", apontamentoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/time-entries/{id}", apontamentoHandler.AtualizarApontamento).Methods("PUT")
	api.HandleFunc("/time-entries/{id}", apontamentoHandler.DeletarApontamento).Methods("DELETE")

	// Dashboard, relatórios e faturamento
	api.HandleFunc("/dashboard/stats", relatorioHandler.Dashboard).Methods("GET")
	api.HandleFunc("/reports", relatorioHandler.Relatorio).Methods("GET")
	api.HandleFunc("/billing/summary", faturamentoHandler.Resumo).Methods("POST")
	api.HandleFunc("/billing/generate-pdf", faturamentoHandler.GerarPDF).Methods("POST")

	var h http.Handler = r
	h = middleware.Recovery(h)
	h = middleware.Logger(h)
	h = middleware.RequestID(h)

	c := cors.New(cors.Options{
		AllowedOrigins:   d.CORSOrigens,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderXRequestID},
		ExposedHeaders:   []string{middleware.HeaderXRequestID, "Content-Disposition"},
		AllowCredentials: false,
	})
	return c.Handler(h)
}
