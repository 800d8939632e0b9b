package memoria

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/servico"
)

type servicos struct{ s *Store }

func copiaServico(sv servico.Servico) servico.Servico {
	sv.TipoServicoID = copiaUint(sv.TipoServicoID)
	sv.Cliente, sv.TipoServico = nil, nil
	return sv
}

// comTipo embute o tipo de serviço; chamar com o lock de leitura
func (s *Store) comTipo(sv servico.Servico) servico.Servico {
	sv = copiaServico(sv)
	if sv.TipoServicoID != nil {
		if t, ok := s.tipos[*sv.TipoServicoID]; ok {
			sv.TipoServico = &t
		}
	}
	return sv
}

func (r *servicos) List(_ context.Context) ([]servico.Servico, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []servico.Servico{}
	for _, sv := range ordenados(r.s.servicos) {
		c, ok := r.s.clientes[sv.ClienteID]
		if !ok {
			continue
		}
		sv = r.s.comTipo(sv)
		sv.Cliente = &c
		out = append(out, sv)
	}
	return out, nil
}

func (r *servicos) ListByCliente(_ context.Context, clienteID uint) ([]servico.Servico, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []servico.Servico{}
	for _, sv := range ordenados(r.s.servicos) {
		if sv.ClienteID == clienteID {
			out = append(out, r.s.comTipo(sv))
		}
	}
	return out, nil
}

func (r *servicos) FindByID(_ context.Context, id uint) (*servico.Servico, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sv, ok := r.s.servicos[id]
	if !ok {
		return nil, naoEncontrado("serviço", id)
	}
	sv = r.s.comTipo(sv)
	return &sv, nil
}

func (r *servicos) FindByCodigo(_ context.Context, codigo string) (*servico.Servico, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sv := range r.s.servicos {
		if sv.Codigo == codigo {
			sv = copiaServico(sv)
			return &sv, nil
		}
	}
	return nil, naoEncontrado("serviço", codigo)
}

func (r *servicos) Create(_ context.Context, sv *servico.Servico) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checarCodigo(0, sv.Codigo); err != nil {
		return err
	}
	sv.ID = r.s.proximoID("servicos")
	r.s.servicos[sv.ID] = copiaServico(*sv)
	return nil
}

func (r *servicos) Update(_ context.Context, id uint, p servico.Patch) (*servico.Servico, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sv, ok := r.s.servicos[id]
	if !ok {
		return nil, naoEncontrado("serviço", id)
	}
	sv = copiaServico(sv)
	p.Aplicar(&sv)
	if err := r.checarCodigo(id, sv.Codigo); err != nil {
		return nil, err
	}
	r.s.servicos[id] = copiaServico(sv)
	return &sv, nil
}

func (r *servicos) Delete(_ context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.servicos[id]; !ok {
		return false, nil
	}
	delete(r.s.servicos, id)
	return true, nil
}

func (r *servicos) checarCodigo(id uint, codigo string) error {
	for _, outro := range r.s.servicos {
		if outro.ID != id && outro.Codigo == codigo {
			return duplicado("code", codigo)
		}
	}
	return nil
}
