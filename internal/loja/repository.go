package loja

import (
	"strconv"

	"github.com/wavewhiz/api-marketplace/internal/categoria"
	"gorm.io/gorm"
)

// Filtros aceitos na listagem de lojas.
type Filtros struct {
	Categoria    string // ID ou nome da categoria
	Empreendedor string // ID do dono
}

type Repository interface {
	Salvar(db *gorm.DB, l *Loja) error
	BuscarPorID(db *gorm.DB, id uint) (*Loja, error)
	Listar(db *gorm.DB, f Filtros) ([]Loja, error)
	Deletar(db *gorm.DB, id uint) error
	DefinirCategorias(db *gorm.DB, l *Loja, categorias []categoria.CategoriaLoja) error
	CNPJEmUso(db *gorm.DB, cnpj string, exceto uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, l *Loja) error {
	return db.Omit("Categorias", "Empreendedor").Save(l).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Loja, error) {
	var l Loja
	if err := db.Preload("Categorias").First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtros) ([]Loja, error) {
	q := db.Model(&Loja{}).Preload("Categorias")

	if f.Empreendedor != "" {
		q = q.Where("lojas.empreendedor_id = ?", f.Empreendedor)
	}
	if f.Categoria != "" {
		q = q.Joins("JOIN loja_categorias ON loja_categorias.loja_id = lojas.id").
			Joins("JOIN categorias_loja ON categorias_loja.id = loja_categorias.categoria_loja_id")
		if id, err := strconv.Atoi(f.Categoria); err == nil {
			q = q.Where("categorias_loja.id = ?", id)
		} else {
			q = q.Where("LOWER(categorias_loja.nome) = LOWER(?)", f.Categoria)
		}
	}

	var lojas []Loja
	err := q.Distinct().Order("lojas.id").Find(&lojas).Error
	return lojas, err
}

// Deletar remove a loja; produtos caem em cascata pela constraint.
func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Select("Categorias").Delete(&Loja{ID: id}).Error
}

func (r *repositoryImpl) DefinirCategorias(db *gorm.DB, l *Loja, categorias []categoria.CategoriaLoja) error {
	return db.Model(l).Association("Categorias").Replace(categorias)
}

func (r *repositoryImpl) CNPJEmUso(db *gorm.DB, cnpj string, exceto uint) (bool, error) {
	var n int64
	err := db.Model(&Loja{}).Where("cnpj = ? AND id <> ?", cnpj, exceto).Count(&n).Error
	return n > 0, err
}
