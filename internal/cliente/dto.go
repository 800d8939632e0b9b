package cliente

// CriarClienteRequest é o payload de POST /api/clients
type CriarClienteRequest struct {
	Codigo string `json:"code" validate:"required"`
	Nome   string `json:"name" validate:"required"`
	CNPJ   string `json:"cnpj" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

func (req CriarClienteRequest) Modelo() Cliente {
	return Cliente{Codigo: req.Codigo, Nome: req.Nome, CNPJ: req.CNPJ, Email: req.Email}
}

// Patch é o payload de PUT /api/clients/{id}; campos ausentes ficam como estão
type Patch struct {
	Codigo *string `json:"code" validate:"omitnil,min=1"`
	Nome   *string `json:"name" validate:"omitnil,min=1"`
	CNPJ   *string `json:"cnpj" validate:"omitnil,min=1"`
	Email  *string `json:"email" validate:"omitnil,email"`
}

func (p Patch) Aplicar(c *Cliente) {
	if p.Codigo != nil {
		c.Codigo = *p.Codigo
	}
	if p.Nome != nil {
		c.Nome = *p.Nome
	}
	if p.CNPJ != nil {
		c.CNPJ = *p.CNPJ
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
}
