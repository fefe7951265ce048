package http

import (
	"net/http"

	"pulsehub/internal/adapters/http/middleware"
	"pulsehub/internal/adapters/ws"
	"pulsehub/internal/config"
)

type RouterDeps struct {
	Ws    *ws.Handler
	Event *EventHandler
	Auth  *AuthHandler
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg))

	userStack := middleware.New()
	userStack.Use(middleware.JWT(cfg))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /ws", deps.Ws.Serve)

	mux.HandleFunc("POST /auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)

	mux.Handle("POST /events", userStack.Then(http.HandlerFunc(deps.Event.Store)))
	mux.Handle("GET /events", userStack.Then(http.HandlerFunc(deps.Event.Index)))
	mux.Handle("GET /events/listeners", userStack.Then(http.HandlerFunc(deps.Event.Listeners)))

	return globalMw.Apply(mux)
}
