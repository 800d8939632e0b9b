package consultor

// request DTOs
type LoginRequest struct {
	Codigo string `json:"code" validate:"required"`
	Senha  string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Consultor Consultor `json:"consultant"`
	Mensagem  string    `json:"message"`
	Token     string    `json:"token"`
}

type CriarConsultorRequest struct {
	Codigo string `json:"code" validate:"required"`
	Nome   string `json:"name" validate:"required"`
	Senha  string `json:"password"`
}

// CriarConsultorResponse só traz a senha temporária quando ela foi gerada pelo servidor
type CriarConsultorResponse struct {
	Consultor
	SenhaTemporaria string `json:"temporaryPassword,omitempty"`
}

// Patch de PUT /api/consultants/{id}; Senha chega em texto e o handler troca pelo hash
type Patch struct {
	Codigo *string `json:"code" validate:"omitnil,min=1"`
	Nome   *string `json:"name" validate:"omitnil,min=1"`
	Senha  *string `json:"password" validate:"omitnil,min=1"`
}

func (p Patch) Aplicar(c *Consultor) {
	if p.Codigo != nil {
		c.Codigo = *p.Codigo
	}
	if p.Nome != nil {
		c.Nome = *p.Nome
	}
	if p.Senha != nil {
		c.Senha = *p.Senha
		c.PrecisaRedefinirSenha = false
	}
}
