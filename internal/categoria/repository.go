package categoria

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) ListAll() ([]CategoriaLoja, error) {
	var categorias []CategoriaLoja
	err := r.DB.Order("nome").Find(&categorias).Error
	return categorias, err
}

func (r *Repository) FindByID(id uint) (*CategoriaLoja, error) {
	var c CategoriaLoja
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByIDs resolve a lista de categorias referenciada por uma loja.
func (r *Repository) FindByIDs(ids []uint) ([]CategoriaLoja, error) {
	var categorias []CategoriaLoja
	if len(ids) == 0 {
		return categorias, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&categorias).Error
	return categorias, err
}

func (r *Repository) Create(c *CategoriaLoja) error {
	return r.DB.Create(c).Error
}

func (r *Repository) Update(c *CategoriaLoja) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(c *CategoriaLoja) error {
	return r.DB.Delete(c).Error
}
