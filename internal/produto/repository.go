package produto

import (
	"strconv"

	"gorm.io/gorm"
)

// Filtros aceitos na listagem de produtos.
type Filtros struct {
	Loja      string // ID da loja dona
	Categoria string // ID ou nome de categoria da loja
}

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Produto) error {
	return r.DB.Omit("Loja").Create(p).Error
}

func (r *Repository) Update(p *Produto) error {
	return r.DB.Omit("Loja").Save(p).Error
}

func (r *Repository) FindByID(id uint) (*Produto, error) {
	var p Produto
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) List(f Filtros) ([]Produto, error) {
	q := r.DB.Model(&Produto{})

	if f.Loja != "" {
		q = q.Where("produtos.loja_id = ?", f.Loja)
	}
	if f.Categoria != "" {
		q = q.Joins("JOIN loja_categorias ON loja_categorias.loja_id = produtos.loja_id").
			Joins("JOIN categorias_loja ON categorias_loja.id = loja_categorias.categoria_loja_id")
		if id, err := strconv.Atoi(f.Categoria); err == nil {
			q = q.Where("categorias_loja.id = ?", id)
		} else {
			q = q.Where("LOWER(categorias_loja.nome) = LOWER(?)", f.Categoria)
		}
	}

	var produtos []Produto
	err := q.Distinct().Order("produtos.id").Find(&produtos).Error
	return produtos, err
}

// Delete remove o produto; itens de carrinho que o referenciam caem em
// cascata.
func (r *Repository) Delete(p *Produto) error {
	return r.DB.Delete(p).Error
}
