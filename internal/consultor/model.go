package consultor

// Consultor registra horas; a senha fica só como hash bcrypt e nunca é serializada
type Consultor struct {
	ID                    uint   `json:"id" gorm:"primaryKey"`
	Codigo                string `json:"code" gorm:"uniqueIndex;not null"`
	Nome                  string `json:"name" gorm:"not null"`
	Senha                 string `json:"-"`
	PrecisaRedefinirSenha bool   `json:"mustResetPassword"`
}
