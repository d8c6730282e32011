package usuario

import "gorm.io/gorm"

type Repository interface {
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	Salvar(db *gorm.DB, u *Usuario) error
	Deletar(db *gorm.DB, id uint) error
	EmailEmUso(db *gorm.DB, email string, exceto uint) (bool, error)
	CPFEmUso(db *gorm.DB, cpf string, exceto uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Order("id").Find(&usuarios).Error
	return usuarios, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

// Deletar remove a conta; lojas, carrinhos e itens dependentes caem pelas
// constraints ON DELETE CASCADE criadas na migração.
func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Usuario{}, id).Error
}

func (r *repositoryImpl) EmailEmUso(db *gorm.DB, email string, exceto uint) (bool, error) {
	var n int64
	err := db.Model(&Usuario{}).Where("email = ? AND id <> ?", email, exceto).Count(&n).Error
	return n > 0, err
}

func (r *repositoryImpl) CPFEmUso(db *gorm.DB, cpf string, exceto uint) (bool, error) {
	var n int64
	err := db.Model(&Usuario{}).Where("cpf = ? AND id <> ?", cpf, exceto).Count(&n).Error
	return n > 0, err
}
