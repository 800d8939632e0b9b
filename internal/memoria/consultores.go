package memoria

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/consultor"
)

type consultores struct{ s *Store }

func (r *consultores) List(_ context.Context) ([]consultor.Consultor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ordenados(r.s.consultores), nil
}

func (r *consultores) FindByID(_ context.Context, id uint) (*consultor.Consultor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.consultores[id]
	if !ok {
		return nil, naoEncontrado("consultor", id)
	}
	return &c, nil
}

func (r *consultores) FindByCodigo(_ context.Context, codigo string) (*consultor.Consultor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.consultores {
		if c.Codigo == codigo {
			return &c, nil
		}
	}
	return nil, naoEncontrado("consultor", codigo)
}

func (r *consultores) Create(_ context.Context, c *consultor.Consultor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checarCodigo(0, c.Codigo); err != nil {
		return err
	}
	c.ID = r.s.proximoID("consultores")
	r.s.consultores[c.ID] = *c
	return nil
}

func (r *consultores) Update(_ context.Context, id uint, p consultor.Patch) (*consultor.Consultor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.consultores[id]
	if !ok {
		return nil, naoEncontrado("consultor", id)
	}
	p.Aplicar(&c)
	if err := r.checarCodigo(id, c.Codigo); err != nil {
		return nil, err
	}
	r.s.consultores[id] = c
	return &c, nil
}

func (r *consultores) Delete(_ context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.consultores[id]; !ok {
		return false, nil
	}
	delete(r.s.consultores, id)
	return true, nil
}

func (r *consultores) checarCodigo(id uint, codigo string) error {
	for _, outro := range r.s.consultores {
		if outro.ID != id && outro.Codigo == codigo {
			return duplicado("code", codigo)
		}
	}
	return nil
}
