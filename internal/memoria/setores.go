package memoria

import (
	"context"

	"github.com/KromaEnergia/api-apontamentos/internal/setor"
)

type setores struct{ s *Store }

func copiaSetor(st setor.Setor) setor.Setor {
	st.ClienteID = copiaUint(st.ClienteID)
	return st
}

func (r *setores) List(_ context.Context) ([]setor.Setor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := ordenados(r.s.setores)
	for i := range out {
		out[i] = copiaSetor(out[i])
	}
	return out, nil
}

func (r *setores) ListByCliente(_ context.Context, clienteID uint) ([]setor.Setor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []setor.Setor{}
	for _, st := range ordenados(r.s.setores) {
		if st.ClienteID != nil && *st.ClienteID == clienteID {
			out = append(out, copiaSetor(st))
		}
	}
	return out, nil
}

func (r *setores) FindByID(_ context.Context, id uint) (*setor.Setor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.setores[id]
	if !ok {
		return nil, naoEncontrado("setor", id)
	}
	st = copiaSetor(st)
	return &st, nil
}

func (r *setores) FindByCodigo(_ context.Context, codigo string) (*setor.Setor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, st := range r.s.setores {
		if st.Codigo == codigo {
			st = copiaSetor(st)
			return &st, nil
		}
	}
	return nil, naoEncontrado("setor", codigo)
}

func (r *setores) Create(_ context.Context, st *setor.Setor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checarCodigo(0, st.Codigo); err != nil {
		return err
	}
	st.ID = r.s.proximoID("setores")
	r.s.setores[st.ID] = copiaSetor(*st)
	return nil
}

func (r *setores) Update(_ context.Context, id uint, p setor.Patch) (*setor.Setor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.setores[id]
	if !ok {
		return nil, naoEncontrado("setor", id)
	}
	st = copiaSetor(st)
	p.Aplicar(&st)
	if err := r.checarCodigo(id, st.Codigo); err != nil {
		return nil, err
	}
	r.s.setores[id] = copiaSetor(st)
	return &st, nil
}

func (r *setores) Delete(_ context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.setores[id]; !ok {
		return false, nil
	}
	delete(r.s.setores, id)
	return true, nil
}

func (r *setores) checarCodigo(id uint, codigo string) error {
	for _, outro := range r.s.setores {
		if outro.ID != id && outro.Codigo == codigo {
			return duplicado("code", codigo)
		}
	}
	return nil
}
