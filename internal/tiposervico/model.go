package tiposervico

// TipoServico classifica serviços no faturamento (ex. consultoria, treinamento)
type TipoServico struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Codigo    string `json:"code" gorm:"uniqueIndex;not null"`
	Descricao string `json:"description" gorm:"not null"`
}

type CriarTipoServicoRequest struct {
	Codigo    string `json:"code" validate:"required"`
	Descricao string `json:"description" validate:"required"`
}

type Patch struct {
	Codigo    *string `json:"code" validate:"omitnil,min=1"`
	Descricao *string `json:"description" validate:"omitnil,min=1"`
}

func (p Patch) Aplicar(t *TipoServico) {
	if p.Codigo != nil {
		t.Codigo = *p.Codigo
	}
	if p.Descricao != nil {
		t.Descricao = *p.Descricao
	}
}
