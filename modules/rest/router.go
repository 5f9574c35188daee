package rest

import (
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lordralex/ballot/api/logger"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/client"
	"github.com/sirupsen/logrus"
	"net/http"
	"time"
)

const (
	walletHeader    = "X-Wallet-Address"
	requestIdHeader = "X-Request-Id"
)

type server struct {
	node   *chain.Node
	client *client.Client
	origin string
}

func newServer(node *chain.Node, cfg client.Config, origin string) *server {
	return &server{node: node, client: client.New(node, nil, cfg), origin: origin}
}

func (s *server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestId, s.cors)

	r.Post("/votes", s.createVote)
	r.Get("/votes", s.listVotes)
	r.Get("/votes/{id}", s.getVote)
	r.Post("/votes/{id}/cast", s.castVote)
	r.Post("/votes/{id}/close", s.closeVote)
	r.Get("/votes/{id}/voters/{address}", s.hasVoted)
	r.Get("/tx/{hash}", s.getReceipt)
	r.Get("/events", s.listEvents)

	return r
}

// clientFor acts as the wallet named in the request; no header means not connected.
func (s *server) clientFor(r *http.Request) *client.Client {
	return s.client.WithWallet(client.StaticWallet(r.Header.Get(walletHeader)))
}

func (s *server) requestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.WithFields(logrus.Fields{
			"request": id,
			"method":  r.Method,
			"path":    r.URL.Path,
			"took":    time.Since(start).String(),
		}).Debug("handled request")
	})
}

func (s *server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+walletHeader+", "+requestIdHeader)
		w.Header().Set("Access-Control-Expose-Headers", requestIdHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
