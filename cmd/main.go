package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/wavewhiz/api-marketplace/internal/admin"
	"github.com/wavewhiz/api-marketplace/internal/auth"
	"github.com/wavewhiz/api-marketplace/internal/carrinho"
	"github.com/wavewhiz/api-marketplace/internal/categoria"
	"github.com/wavewhiz/api-marketplace/internal/loja"
	"github.com/wavewhiz/api-marketplace/internal/middleware"
	"github.com/wavewhiz/api-marketplace/internal/pagamento"
	"github.com/wavewhiz/api-marketplace/internal/produto"
	"github.com/wavewhiz/api-marketplace/internal/storage"
	"github.com/wavewhiz/api-marketplace/internal/usuario"
	"github.com/wavewhiz/api-marketplace/internal/utils/db"
)

func env(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}

func main() {
	_ = godotenv.Load()
	logrus.SetFormatter(&logrus.JSONFormatter{})

	database, err := db.Conectar()
	if err != nil {
		logrus.WithError(err).Fatal("erro ao conectar no banco")
	}

	// Tabela explícita de registro: modelo → migração + CRUD administrativo.
	// A ordem importa: pais antes de filhos, por causa das constraints.
	registro := admin.NovoRegistro()
	registro.Registrar(
		admin.Recurso{
			Nome:      "usuarios",
			Modelo:    &usuario.Usuario{},
			Novo:      func() interface{} { return &usuario.Usuario{} },
			NovaLista: func() interface{} { return &[]usuario.Usuario{} },
		},
		admin.Recurso{
			Nome:      "categorias",
			Modelo:    &categoria.CategoriaLoja{},
			Novo:      func() interface{} { return &categoria.CategoriaLoja{} },
			NovaLista: func() interface{} { return &[]categoria.CategoriaLoja{} },
		},
		admin.Recurso{
			Nome:      "lojas",
			Modelo:    &loja.Loja{},
			Novo:      func() interface{} { return &loja.Loja{} },
			NovaLista: func() interface{} { return &[]loja.Loja{} },
		},
		admin.Recurso{
			Nome:      "produtos",
			Modelo:    &produto.Produto{},
			Novo:      func() interface{} { return &produto.Produto{} },
			NovaLista: func() interface{} { return &[]produto.Produto{} },
		},
		admin.Recurso{
			Nome:      "metodos-pagamento",
			Modelo:    &pagamento.MetodoPagamento{},
			Novo:      func() interface{} { return &pagamento.MetodoPagamento{} },
			NovaLista: func() interface{} { return &[]pagamento.MetodoPagamento{} },
		},
		admin.Recurso{
			Nome:      "carrinhos",
			Modelo:    &carrinho.Carrinho{},
			Novo:      func() interface{} { return &carrinho.Carrinho{} },
			NovaLista: func() interface{} { return &[]carrinho.Carrinho{} },
		},
		admin.Recurso{
			Nome:      "itens-carrinho",
			Modelo:    &carrinho.ItemCarrinho{},
			Novo:      func() interface{} { return &carrinho.ItemCarrinho{} },
			NovaLista: func() interface{} { return &[]carrinho.ItemCarrinho{} },
		},
	)
	if err := registro.Migrar(database); err != nil {
		logrus.WithError(err).Fatal("erro na migração")
	}

	media := storage.NewMedia(env("MEDIA_DIR", "./media"))

	// Handlers
	usuarioHandler := usuario.NewHandler(database)
	categoriaHandler := categoria.NewHandler(database)
	lojaHandler := loja.NewHandler(database, media)
	produtoHandler := produto.NewHandler(database, media)
	pagamentoHandler := pagamento.NewHandler(database)
	carrinhoHandler := carrinho.NewHandler(database)

	// Router
	r := mux.NewRouter().StrictSlash(true)
	r.Use(middleware.Logger)
	r.Use(auth.MiddlewareOpcional)

	proteger := func(entidade string, acao auth.Acao, h http.HandlerFunc) http.Handler {
		return auth.Exigir(entidade, acao)(h)
	}

	// Autenticação
	r.HandleFunc("/api/token/", usuarioHandler.ObterToken).Methods("POST")
	r.HandleFunc("/api/token/refresh/", usuarioHandler.AtualizarToken).Methods("POST")

	// Usuários
	r.Handle("/usuarios/", proteger("usuario", auth.AcaoCriar, usuarioHandler.Criar)).Methods("POST")
	r.Handle("/usuarios/", proteger("usuario", auth.AcaoListar, usuarioHandler.Listar)).Methods("GET")
	r.Handle("/usuarios/{id}/", proteger("usuario", auth.AcaoVer, usuarioHandler.Buscar)).Methods("GET")
	r.Handle("/usuarios/{id}/", proteger("usuario", auth.AcaoAtualizar, usuarioHandler.Atualizar)).Methods("PUT", "PATCH")
	r.Handle("/usuarios/{id}/", proteger("usuario", auth.AcaoDeletar, usuarioHandler.Deletar)).Methods("DELETE")

	// Lojas
	r.Handle("/lojas/", proteger("loja", auth.AcaoCriar, lojaHandler.Criar)).Methods("POST")
	r.Handle("/lojas/", proteger("loja", auth.AcaoListar, lojaHandler.Listar)).Methods("GET")
	r.Handle("/lojas/{id}/", proteger("loja", auth.AcaoVer, lojaHandler.Buscar)).Methods("GET")
	r.Handle("/lojas/{id}/", proteger("loja", auth.AcaoAtualizar, lojaHandler.Atualizar)).Methods("PUT", "PATCH")
	r.Handle("/lojas/{id}/", proteger("loja", auth.AcaoDeletar, lojaHandler.Deletar)).Methods("DELETE")
	r.Handle("/lojas/{id}/imagem", proteger("loja", auth.AcaoAtualizar, lojaHandler.UploadImagem)).Methods("POST")

	// Produtos
	r.Handle("/produtos/", proteger("produto", auth.AcaoCriar, produtoHandler.Criar)).Methods("POST")
	r.Handle("/produtos/", proteger("produto", auth.AcaoListar, produtoHandler.Listar)).Methods("GET")
	r.Handle("/produtos/{id}/", proteger("produto", auth.AcaoVer, produtoHandler.Buscar)).Methods("GET")
	r.Handle("/produtos/{id}/", proteger("produto", auth.AcaoAtualizar, produtoHandler.Atualizar)).Methods("PUT", "PATCH")
	r.Handle("/produtos/{id}/", proteger("produto", auth.AcaoDeletar, produtoHandler.Deletar)).Methods("DELETE")
	r.Handle("/produtos/{id}/imagem", proteger("produto", auth.AcaoAtualizar, produtoHandler.UploadImagem)).Methods("POST")

	// Métodos de pagamento
	r.Handle("/metodos-pagamento/", proteger("metodo-pagamento", auth.AcaoCriar, pagamentoHandler.Criar)).Methods("POST")
	r.Handle("/metodos-pagamento/", proteger("metodo-pagamento", auth.AcaoListar, pagamentoHandler.Listar)).Methods("GET")
	r.Handle("/metodos-pagamento/{id}/", proteger("metodo-pagamento", auth.AcaoVer, pagamentoHandler.Buscar)).Methods("GET")
	r.Handle("/metodos-pagamento/{id}/", proteger("metodo-pagamento", auth.AcaoAtualizar, pagamentoHandler.Atualizar)).Methods("PUT", "PATCH")
	r.Handle("/metodos-pagamento/{id}/", proteger("metodo-pagamento", auth.AcaoDeletar, pagamentoHandler.Deletar)).Methods("DELETE")

	// Carrinhos
	r.Handle("/carrinhos/", proteger("carrinho", auth.AcaoCriar, carrinhoHandler.Criar)).Methods("POST")
	r.Handle("/carrinhos/", proteger("carrinho", auth.AcaoListar, carrinhoHandler.Listar)).Methods("GET")
	r.Handle("/carrinhos/{id}/", proteger("carrinho", auth.AcaoVer, carrinhoHandler.Buscar)).Methods("GET")
	r.Handle("/carrinhos/{id}/", proteger("carrinho", auth.AcaoAtualizar, carrinhoHandler.Atualizar)).Methods("PUT", "PATCH")
	r.Handle("/carrinhos/{id}/", proteger("carrinho", auth.AcaoDeletar, carrinhoHandler.Deletar)).Methods("DELETE")

	// Itens de carrinho
	r.Handle("/itens-carrinho/", proteger("item-carrinho", auth.AcaoCriar, carrinhoHandler.CriarItem)).Methods("POST")
	r.Handle("/itens-carrinho/", proteger("item-carrinho", auth.AcaoListar, carrinhoHandler.ListarItens)).Methods("GET")
	r.Handle("/itens-carrinho/{id}/", proteger("item-carrinho", auth.AcaoVer, carrinhoHandler.BuscarItem)).Methods("GET")
	r.Handle("/itens-carrinho/{id}/", proteger("item-carrinho", auth.AcaoAtualizar, carrinhoHandler.AtualizarItem)).Methods("PUT", "PATCH")
	r.Handle("/itens-carrinho/{id}/", proteger("item-carrinho", auth.AcaoDeletar, carrinhoHandler.DeletarItem)).Methods("DELETE")

	// Categorias
	r.Handle("/categorias/", proteger("categoria", auth.AcaoCriar, categoriaHandler.Criar)).Methods("POST")
	r.Handle("/categorias/", proteger("categoria", auth.AcaoListar, categoriaHandler.Listar)).Methods("GET")
	r.Handle("/categorias/{id}/", proteger("categoria", auth.AcaoVer, categoriaHandler.Buscar)).Methods("GET")
	r.Handle("/categorias/{id}/", proteger("categoria", auth.AcaoAtualizar, categoriaHandler.Atualizar)).Methods("PUT", "PATCH")
	r.Handle("/categorias/{id}/", proteger("categoria", auth.AcaoDeletar, categoriaHandler.Deletar)).Methods("DELETE")

	// Admin
	registro.Rotas(r, database)

	// Arquivos de mídia (imagens de lojas e produtos)
	r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(media.Dir))))

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	addr := env("HTTP_ADDR", ":8080")
	logrus.WithField("addr", addr).Info("servidor no ar")
	logrus.Fatal(http.ListenAndServe(addr, handler))
}
