package pagamento

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) ListAll() ([]MetodoPagamento, error) {
	var metodos []MetodoPagamento
	err := r.DB.Order("id").Find(&metodos).Error
	return metodos, err
}

func (r *Repository) FindByID(id uint) (*MetodoPagamento, error) {
	var m MetodoPagamento
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) Create(m *MetodoPagamento) error {
	return r.DB.Create(m).Error
}

func (r *Repository) Update(m *MetodoPagamento) error {
	return r.DB.Save(m).Error
}

// Delete remove o método; carrinhos que o referenciam ficam com o campo nulo
// (ON DELETE SET NULL).
func (r *Repository) Delete(m *MetodoPagamento) error {
	return r.DB.Delete(m).Error
}
