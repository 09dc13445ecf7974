// Package router embrulha o httprouter com registro declarativo de rotas:
// cada grupo de handlers devolve suas rotas e o servidor as compõe via
// opções funcionais.
package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var (
	// WithRoutes registra um grupo de rotas na construção do roteador.
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}
)

// Route descreve uma rota HTTP e os middlewares aplicados somente a ela;
// os middlewares globais da aplicação ficam na cadeia do servidor.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

type Router struct {
	router *httprouter.Router
}

type ConfigRouter func(router *Router)

// New cria o roteador e aplica as opções de configuração na ordem recebida.
func New(configs ...ConfigRouter) Router {
	router := &Router{
		router: httprouter.New(),
	}

	for _, config := range configs {
		config(router)
	}

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes registra cada rota com sua cadeia de middlewares. A aplicação
// é do último para o primeiro, de modo que o primeiro da lista envolve os
// demais.
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		var handler http.Handler = route.Handler

		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			middleware := route.Middlewares[i]
			handler = middleware(handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
	}
}
