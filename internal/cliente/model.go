package cliente

// Cliente é a empresa atendida; código e CNPJ são únicos
type Cliente struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Codigo string `json:"code" gorm:"uniqueIndex;not null"`
	Nome   string `json:"name" gorm:"not null"`
	CNPJ   string `json:"cnpj" gorm:"uniqueIndex;not null"`
	Email  string `json:"email" gorm:"not null"`
}
