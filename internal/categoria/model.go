package categoria

// CategoriaLoja é uma etiqueta nomeada; lojas a referenciam em many-to-many,
// nunca a possuem.
type CategoriaLoja struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:50;uniqueIndex;not null" json:"nome"`
}

func (CategoriaLoja) TableName() string { return "categorias_loja" }
