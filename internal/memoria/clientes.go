package memoria

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
)

type clientes struct{ s *Store }

func (r *clientes) List(_ context.Context) ([]cliente.Cliente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ordenados(r.s.clientes), nil
}

func (r *clientes) FindByID(_ context.Context, id uint) (*cliente.Cliente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clientes[id]
	if !ok {
		return nil, naoEncontrado("cliente", id)
	}
	return &c, nil
}

func (r *clientes) FindByCodigo(_ context.Context, codigo string) (*cliente.Cliente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.clientes {
		if c.Codigo == codigo {
			return &c, nil
		}
	}
	return nil, naoEncontrado("cliente", codigo)
}

func (r *clientes) FindByCNPJ(_ context.Context, cnpj string) (*cliente.Cliente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.clientes {
		if c.CNPJ == cnpj {
			return &c, nil
		}
	}
	return nil, naoEncontrado("cliente", cnpj)
}

func (r *clientes) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.clientes)), nil
}

func (r *clientes) Create(_ context.Context, c *cliente.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checarUnicos(0, *c); err != nil {
		return err
	}
	c.ID = r.s.proximoID("clientes")
	r.s.clientes[c.ID] = *c
	return nil
}

func (r *clientes) Update(_ context.Context, id uint, p cliente.Patch) (*cliente.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clientes[id]
	if !ok {
		return nil, naoEncontrado("cliente", id)
	}
	p.Aplicar(&c)
	if err := r.checarUnicos(id, c); err != nil {
		return nil, err
	}
	r.s.clientes[id] = c
	return &c, nil
}

func (r *clientes) Delete(_ context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clientes[id]; !ok {
		return false, nil
	}
	delete(r.s.clientes, id)
	return true, nil
}

func (r *clientes) checarUnicos(id uint, c cliente.Cliente) error {
	for _, outro := range r.s.clientes {
		if outro.ID == id {
			continue
		}
		if outro.Codigo == c.Codigo {
			return duplicado("code", c.Codigo)
		}
		if outro.CNPJ == c.CNPJ {
			return duplicado("cnpj", c.CNPJ)
		}
	}
	return nil
}
