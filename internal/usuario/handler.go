package usuario

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/wavewhiz/api-marketplace/internal/auth"
	"github.com/wavewhiz/api-marketplace/internal/utils"
	"gorm.io/gorm"
)

// Mesmo corpo para e-mail desconhecido, senha errada ou conta inativa, para
// não permitir enumeração de contas.
const msgCredenciaisInvalidas = "Credenciais inválidas"

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	validate   *validator.Validate
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		validate:   utils.NovoValidador(),
	}
}

// ObterToken autentica por e-mail+senha e emite o par access/refresh.
// POST /api/token/
func (h *Handler) ObterToken(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, msgCredenciaisInvalidas)
		return
	}
	if !utils.VerificarSenha(user.Senha, req.Senha) {
		utils.RespondErro(w, http.StatusBadRequest, msgCredenciaisInvalidas)
		return
	}

	access, refresh, err := auth.GerarPar(user.ID, user.Role, user.IsStaff)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao gerar token")
		return
	}
	utils.RespondJSON(w, http.StatusOK, tokenResponse{Access: access, Refresh: refresh})
}

// AtualizarToken troca um refresh token válido por um novo access token.
// POST /api/token/refresh/
func (h *Handler) AtualizarToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	claims, err := auth.ValidarToken(req.Refresh, auth.TipoRefresh)
	if err != nil {
		utils.RespondErro(w, http.StatusUnauthorized, "refresh token inválido ou expirado")
		return
	}

	access, err := auth.GerarAccessToken(claims.UserID, claims.Role, claims.IsStaff)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao gerar token")
		return
	}
	utils.RespondJSON(w, http.StatusOK, tokenResponse{Access: access})
}

// Criar cadastra um usuário. Aberto ao público; as flags de staff/superuser só
// são aceitas quando quem chama já é staff (provisionamento administrativo).
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondErroCampos(w, utils.MensagensValidacao(err))
		return
	}

	if !auth.EhStaff(r.Context()) {
		req.IsStaff = false
		req.IsSuperuser = false
	}

	telefone, err := utils.NormalizarTelefone(req.Telefone)
	if err != nil {
		utils.RespondErroCampos(w, map[string]string{"telefone": err.Error()})
		return
	}

	var cpf *string
	if req.CPF != "" {
		normalizado, err := utils.NormalizarCPF(req.CPF)
		if err != nil {
			utils.RespondErroCampos(w, map[string]string{"cpf": err.Error()})
			return
		}
		cpf = &normalizado
	} else if !req.IsSuperuser {
		utils.RespondErroCampos(w, map[string]string{"cpf": "este campo é obrigatório"})
		return
	}

	if emUso, err := h.Repository.EmailEmUso(h.DB, req.Email, 0); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar e-mail")
		return
	} else if emUso {
		utils.RespondErroCampos(w, map[string]string{"email": "e-mail já cadastrado"})
		return
	}
	if cpf != nil {
		if emUso, err := h.Repository.CPFEmUso(h.DB, *cpf, 0); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar CPF")
			return
		} else if emUso {
			utils.RespondErroCampos(w, map[string]string{"cpf": "CPF já cadastrado"})
			return
		}
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao processar senha")
		return
	}

	u := Usuario{
		Nome:           req.Nome,
		Email:          req.Email,
		CPF:            cpf,
		Telefone:       telefone,
		DataNascimento: req.DataNascimento,
		Role:           req.Role,
		IsStaff:        req.IsStaff,
		IsSuperuser:    req.IsSuperuser,
		Senha:          hash,
	}
	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar usuário")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, u)
}

// Listar retorna todos os usuários (rota restrita a staff pela política).
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar usuários")
		return
	}
	utils.RespondJSON(w, http.StatusOK, usuarios)
}

// Buscar retorna um usuário pelo ID. Para não-staff o conjunto visível é só a
// própria conta, então qualquer outro ID resulta em 404.
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.IDDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if !auth.EhStaff(r.Context()) && uint(id) != userID {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}
	utils.RespondJSON(w, http.StatusOK, obj)
}

// Atualizar altera dados do usuário. Não-staff mirando outro ID tem o alvo
// silenciosamente trocado para o próprio registro, sem erro de permissão.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.IDDoContexto(r.Context())
	ehStaff := auth.EhStaff(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	alvo := uint(id)
	if !ehStaff {
		alvo = userID
	}

	existente, err := h.Repository.BuscarPorID(h.DB, alvo)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}

	var req atualizarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondErroCampos(w, utils.MensagensValidacao(err))
		return
	}

	if req.Nome != nil {
		existente.Nome = *req.Nome
	}
	if req.Email != nil {
		if emUso, err := h.Repository.EmailEmUso(h.DB, *req.Email, existente.ID); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar e-mail")
			return
		} else if emUso {
			utils.RespondErroCampos(w, map[string]string{"email": "e-mail já cadastrado"})
			return
		}
		existente.Email = *req.Email
	}
	if req.CPF != nil {
		normalizado, err := utils.NormalizarCPF(*req.CPF)
		if err != nil {
			utils.RespondErroCampos(w, map[string]string{"cpf": err.Error()})
			return
		}
		if emUso, err := h.Repository.CPFEmUso(h.DB, normalizado, existente.ID); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar CPF")
			return
		} else if emUso {
			utils.RespondErroCampos(w, map[string]string{"cpf": "CPF já cadastrado"})
			return
		}
		existente.CPF = &normalizado
	}
	if req.Telefone != nil {
		telefone, err := utils.NormalizarTelefone(*req.Telefone)
		if err != nil {
			utils.RespondErroCampos(w, map[string]string{"telefone": err.Error()})
			return
		}
		existente.Telefone = telefone
	}
	if req.DataNascimento != nil {
		existente.DataNascimento = *req.DataNascimento
	}
	if req.Role != nil {
		existente.Role = *req.Role
	}
	if req.Senha != nil {
		hash, err := utils.HashSenha(*req.Senha)
		if err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao processar senha")
			return
		}
		existente.Senha = hash
	}
	if ehStaff {
		if req.IsStaff != nil {
			existente.IsStaff = *req.IsStaff
		}
		if req.IsSuperuser != nil {
			existente.IsSuperuser = *req.IsSuperuser
		}
	}

	if err := h.Repository.Salvar(h.DB, existente); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar usuário")
		return
	}
	utils.RespondJSON(w, http.StatusOK, existente)
}

// Deletar remove um usuário e, em cascata, suas lojas e carrinhos.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
			return
		}
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao buscar usuário")
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir usuário")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
