package memoria

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/apontamento"
	"github.com/KromaEnergia/api-apontamentos/internal/servico"
)

type apontamentos struct{ s *Store }

func copiaApontamento(a apontamento.Apontamento) apontamento.Apontamento {
	a = a.SemRelacoes()
	a.SetorID = copiaUint(a.SetorID)
	a.InicioIntervalo = copiaString(a.InicioIntervalo)
	a.FimIntervalo = copiaString(a.FimIntervalo)
	a.AtividadeConcluida = copiaString(a.AtividadeConcluida)
	a.PrevisaoEntrega = copiaString(a.PrevisaoEntrega)
	a.EntregaReal = copiaString(a.EntregaReal)
	a.Projeto = copiaString(a.Projeto)
	a.LocalServico = copiaString(a.LocalServico)
	return a
}

// buscarServico lê o mapa sob o lock já adquirido pelo chamador
func (s *Store) buscarServico(id uint) (*servico.Servico, error) {
	sv, ok := s.servicos[id]
	if !ok {
		return nil, naoEncontrado("serviço", id)
	}
	sv = copiaServico(sv)
	return &sv, nil
}

// Create calcula e grava sob o mesmo lock de escrita
func (r *apontamentos) Create(_ context.Context, a *apontamento.Apontamento) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := apontamento.Preparar(a, r.s.buscarServico); err != nil {
		return err
	}
	a.ID = r.s.proximoID("apontamentos")
	r.s.apontamentos[a.ID] = copiaApontamento(*a)
	return nil
}

func (r *apontamentos) Update(_ context.Context, id uint, p apontamento.Patch) (*apontamento.Apontamento, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	atual, ok := r.s.apontamentos[id]
	if !ok {
		return nil, naoEncontrado("apontamento", id)
	}
	a := copiaApontamento(atual)
	if err := apontamento.Mesclar(&a, p, r.s.buscarServico); err != nil {
		return nil, err
	}
	r.s.apontamentos[id] = copiaApontamento(a)
	return &a, nil
}

func (r *apontamentos) Delete(_ context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.apontamentos[id]; !ok {
		return false, nil
	}
	delete(r.s.apontamentos, id)
	return true, nil
}

func (r *apontamentos) FindByID(_ context.Context, id uint) (*apontamento.Apontamento, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.apontamentos[id]
	if !ok {
		return nil, naoEncontrado("apontamento", id)
	}
	a = copiaApontamento(a)
	return &a, nil
}

func (r *apontamentos) ListDetalhados(_ context.Context, f apontamento.Filtro) ([]apontamento.Apontamento, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []apontamento.Apontamento{}
	for _, a := range r.s.apontamentos {
		if !f.Aceita(a) {
			continue
		}
		if d, ok := r.s.detalhar(a); ok {
			out = append(out, d)
		}
	}
	apontamento.Ordenar(out)
	return out, nil
}

func (r *apontamentos) ListDoMes(_ context.Context, prefixo string) ([]apontamento.Apontamento, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []apontamento.Apontamento{}
	for _, a := range ordenados(r.s.apontamentos) {
		if apontamento.DoMes(a, prefixo) {
			out = append(out, copiaApontamento(a))
		}
	}
	return out, nil
}

// detalhar embute as relações; false quando consultor, cliente ou serviço não existem mais
func (s *Store) detalhar(a apontamento.Apontamento) (apontamento.Apontamento, bool) {
	c, ok := s.consultores[a.ConsultorID]
	if !ok {
		return a, false
	}
	cl, ok := s.clientes[a.ClienteID]
	if !ok {
		return a, false
	}
	sv, ok := s.servicos[a.ServicoID]
	if !ok {
		return a, false
	}

	d := copiaApontamento(a)
	sv = s.comTipo(sv)
	d.Consultor, d.Cliente, d.Servico = &c, &cl, &sv
	if d.SetorID != nil {
		if st, ok := s.setores[*d.SetorID]; ok {
			st = copiaSetor(st)
			d.Setor = &st
		}
	}
	return d, true
}
