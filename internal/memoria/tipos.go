package memoria

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/tiposervico"
)

type tipos struct{ s *Store }

func (r *tipos) List(_ context.Context) ([]tiposervico.TipoServico, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ordenados(r.s.tipos), nil
}

func (r *tipos) FindByID(_ context.Context, id uint) (*tiposervico.TipoServico, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tipos[id]
	if !ok {
		return nil, naoEncontrado("tipo de serviço", id)
	}
	return &t, nil
}

func (r *tipos) FindByCodigo(_ context.Context, codigo string) (*tiposervico.TipoServico, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tipos {
		if t.Codigo == codigo {
			return &t, nil
		}
	}
	return nil, naoEncontrado("tipo de serviço", codigo)
}

func (r *tipos) Create(_ context.Context, t *tiposervico.TipoServico) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checarCodigo(0, t.Codigo); err != nil {
		return err
	}
	t.ID = r.s.proximoID("tipos")
	r.s.tipos[t.ID] = *t
	return nil
}

func (r *tipos) Update(_ context.Context, id uint, p tiposervico.Patch) (*tiposervico.TipoServico, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tipos[id]
	if !ok {
		return nil, naoEncontrado("tipo de serviço", id)
	}
	p.Aplicar(&t)
	if err := r.checarCodigo(id, t.Codigo); err != nil {
		return nil, err
	}
	r.s.tipos[id] = t
	return &t, nil
}

func (r *tipos) Delete(_ context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tipos[id]; !ok {
		return false, nil
	}
	delete(r.s.tipos, id)
	return true, nil
}

func (r *tipos) checarCodigo(id uint, codigo string) error {
	for _, outro := range r.s.tipos {
		if outro.ID != id && outro.Codigo == codigo {
			return duplicado("code", codigo)
		}
	}
	return nil
}
