// Package admin materializa o cadastro entidade→CRUD administrativo como uma
// tabela explícita montada no startup, no lugar de registro por efeito
// colateral de import.
package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wavewhiz/api-marketplace/internal/auth"
	"github.com/wavewhiz/api-marketplace/internal/utils"
	"gorm.io/gorm"
)

// Recurso descreve um modelo administrável: nome da rota, o modelo para a
// migração e construtores para decodificação.
type Recurso struct {
	Nome      string
	Modelo    interface{}
	Novo      func() interface{}
	NovaLista func() interface{}
}

type Registro struct {
	recursos []Recurso
}

func NovoRegistro() *Registro {
	return &Registro{}
}

func (reg *Registro) Registrar(recursos ...Recurso) {
	reg.recursos = append(reg.recursos, recursos...)
}

// Migrar roda AutoMigrate para todos os modelos registrados, na ordem de
// registro (pais antes de filhos, por causa das constraints).
func (reg *Registro) Migrar(db *gorm.DB) error {
	modelos := make([]interface{}, 0, len(reg.recursos))
	for _, rec := range reg.recursos {
		modelos = append(modelos, rec.Modelo)
	}
	return db.AutoMigrate(modelos...)
}

// Rotas monta o CRUD genérico de cada recurso sob /admin/{nome}, restrito a
// staff. O subrouter exige o token por conta própria, sem depender do
// middleware opcional do router pai.
func (reg *Registro) Rotas(r *mux.Router, db *gorm.DB) {
	sub := r.PathPrefix("/admin").Subrouter()
	sub.Use(auth.MiddlewareAutenticacao, auth.RequireStaff)

	for _, rec := range reg.recursos {
		rec := rec
		base := "/" + rec.Nome
		sub.HandleFunc(base, listar(db, rec)).Methods("GET")
		sub.HandleFunc(base, criar(db, rec)).Methods("POST")
		sub.HandleFunc(base+"/{id:[0-9]+}", buscar(db, rec)).Methods("GET")
		sub.HandleFunc(base+"/{id:[0-9]+}", atualizar(db, rec)).Methods("PUT")
		sub.HandleFunc(base+"/{id:[0-9]+}", deletar(db, rec)).Methods("DELETE")
	}
}

func listar(db *gorm.DB, rec Recurso) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lista := rec.NovaLista()
		if err := db.Find(lista).Error; err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar "+rec.Nome)
			return
		}
		utils.RespondJSON(w, http.StatusOK, lista)
	}
}

func criar(db *gorm.DB, rec Recurso) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj := rec.Novo()
		if err := json.NewDecoder(r.Body).Decode(obj); err != nil {
			utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
			return
		}
		if err := db.Create(obj).Error; err != nil {
			utils.RespondErro(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondJSON(w, http.StatusCreated, obj)
	}
}

func buscar(db *gorm.DB, rec Recurso) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])
		obj := rec.Novo()
		if err := db.First(obj, id).Error; err != nil {
			utils.RespondErro(w, http.StatusNotFound, "registro não encontrado")
			return
		}
		utils.RespondJSON(w, http.StatusOK, obj)
	}
}

func atualizar(db *gorm.DB, rec Recurso) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])
		obj := rec.Novo()
		if err := db.First(obj, id).Error; err != nil {
			utils.RespondErro(w, http.StatusNotFound, "registro não encontrado")
			return
		}
		if err := json.NewDecoder(r.Body).Decode(obj); err != nil {
			utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
			return
		}
		if err := db.Save(obj).Error; err != nil {
			utils.RespondErro(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondJSON(w, http.StatusOK, obj)
	}
}

func deletar(db *gorm.DB, rec Recurso) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])
		if err := db.Delete(rec.Novo(), id).Error; err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir registro")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
