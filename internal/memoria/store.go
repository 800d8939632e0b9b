// Package memoria implementa os repositórios em mapas protegidos por um único mutex.
// Serve para testes e para STORAGE_DRIVER=memory; tudo se perde ao reiniciar.
package memoria

import (
	"fmt"
	"sort"
	"sync"

	"github.com/KromaEnergia/api-apontamentos/internal/apontamento"
	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
	"github.com/KromaEnergia/api-apontamentos/internal/consultor"
	"github.com/KromaEnergia/api-apontamentos/internal/servico"
	"github.com/KromaEnergia/api-apontamentos/internal/setor"
	"github.com/KromaEnergia/api-apontamentos/internal/tiposervico"
)

type Store struct {
	mu sync.RWMutex

	clientes     map[uint]cliente.Cliente
	consultores  map[uint]consultor.Consultor
	tipos        map[uint]tiposervico.TipoServico
	servicos     map[uint]servico.Servico
	setores      map[uint]setor.Setor
	apontamentos map[uint]apontamento.Apontamento

	seq map[string]uint
}

func NewStore() *Store {
	return &Store{
		clientes:     map[uint]cliente.Cliente{},
		consultores:  map[uint]consultor.Consultor{},
		tipos:        map[uint]tiposervico.TipoServico{},
		servicos:     map[uint]servico.Servico{},
		setores:      map[uint]setor.Setor{},
		apontamentos: map[uint]apontamento.Apontamento{},
		seq:          map[string]uint{},
	}
}

func (s *Store) Clientes() cliente.Repository { return &clientes{s} }
func (s *Store) Consultores() consultor.Repository { return &consultores{s} }
func (s *Store) TiposServico() tiposervico.Repository { return &tipos{s} }
func (s *Store) Servicos() servico.Repository { return &servicos{s} }
func (s *Store) Setores() setor.Repository { return &setores{s} }
func (s *Store) Apontamentos() apontamento.Repository { return &apontamentos{s} }

// proximoID deve ser chamado com o lock de escrita
func (s *Store) proximoID(tabela string) uint {
	s.seq[tabela]++
	return s.seq[tabela]
}

func ordenados[T any](m map[uint]T) []T {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func naoEncontrado(tabela string, id any) error {
	return fmt.Errorf("%s %v: %w", tabela, id, apperr.ErrNaoEncontrado)
}

func duplicado(campo, valor string) error {
	return fmt.Errorf("%s %q: %w", campo, valor, apperr.ErrDuplicado)
}

func copiaUint(p *uint) *uint {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copiaString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
