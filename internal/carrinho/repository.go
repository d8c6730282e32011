package carrinho

import (
	"github.com/wavewhiz/api-marketplace/internal/produto"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// --- Carrinhos ---

func (r *Repository) Create(c *Carrinho) error {
	return r.DB.Omit("Cliente", "MetodoPagamento", "Itens").Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Carrinho, error) {
	var c Carrinho
	if err := r.DB.Preload("Itens.Produto").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByCliente devolve os carrinhos de um cliente; cliente 0 lista todos
// (visão de staff sem filtro).
func (r *Repository) ListByCliente(cliente uint) ([]Carrinho, error) {
	q := r.DB.Preload("Itens.Produto").Order("id")
	if cliente != 0 {
		q = q.Where("cliente_id = ?", cliente)
	}
	var carrinhos []Carrinho
	err := q.Find(&carrinhos).Error
	return carrinhos, err
}

func (r *Repository) Update(c *Carrinho) error {
	return r.DB.Omit("Cliente", "MetodoPagamento", "Itens").Save(c).Error
}

// Delete remove o carrinho; itens caem em cascata.
func (r *Repository) Delete(c *Carrinho) error {
	return r.DB.Delete(c).Error
}

// --- Itens ---

func (r *Repository) CreateItem(i *ItemCarrinho) error {
	if err := r.DB.Omit("Carrinho", "Produto").Create(i).Error; err != nil {
		return err
	}
	return r.DB.Preload("Produto").First(i, i.ID).Error
}

func (r *Repository) ProdutoExiste(id uint) (bool, error) {
	var n int64
	err := r.DB.Model(&produto.Produto{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *Repository) FindItemByID(id uint) (*ItemCarrinho, error) {
	var i ItemCarrinho
	if err := r.DB.Preload("Produto").First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

// ListItens filtra por carrinho e, quando cliente != 0, restringe aos itens
// cujos carrinhos pertencem a esse cliente.
func (r *Repository) ListItens(carrinho string, cliente uint) ([]ItemCarrinho, error) {
	q := r.DB.Preload("Produto").
		Joins("JOIN carrinhos ON carrinhos.id = itens_carrinho.carrinho_id")
	if carrinho != "" {
		q = q.Where("itens_carrinho.carrinho_id = ?", carrinho)
	}
	if cliente != 0 {
		q = q.Where("carrinhos.cliente_id = ?", cliente)
	}
	var itens []ItemCarrinho
	err := q.Order("itens_carrinho.id").Find(&itens).Error
	return itens, err
}

func (r *Repository) UpdateItem(i *ItemCarrinho) error {
	return r.DB.Omit("Carrinho", "Produto").Save(i).Error
}

func (r *Repository) DeleteItem(i *ItemCarrinho) error {
	return r.DB.Delete(i).Error
}
