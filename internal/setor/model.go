package setor

// Setor é a área do cliente onde o trabalho foi feito; ClienteID nil vale para todos
type Setor struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Codigo    string `json:"code" gorm:"uniqueIndex;not null"`
	ClienteID *uint  `json:"clientId" gorm:"index"`
	Descricao string `json:"description" gorm:"not null"`
}

type CriarSetorRequest struct {
	Codigo    string `json:"code" validate:"required"`
	ClienteID *uint  `json:"clientId" validate:"omitnil,min=1"`
	Descricao string `json:"description" validate:"required"`
}

// Patch de PUT /api/sectors/{id}; clientId 0 desvincula do cliente
type Patch struct {
	Codigo    *string `json:"code" validate:"omitnil,min=1"`
	ClienteID *uint   `json:"clientId"`
	Descricao *string `json:"description" validate:"omitnil,min=1"`
}

func (p Patch) Aplicar(s *Setor) {
	if p.Codigo != nil {
		s.Codigo = *p.Codigo
	}
	if p.ClienteID != nil {
		if *p.ClienteID == 0 {
			s.ClienteID = nil
		} else {
			id := *p.ClienteID
			s.ClienteID = &id
		}
	}
	if p.Descricao != nil {
		s.Descricao = *p.Descricao
	}
}
