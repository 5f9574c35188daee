package rest

import (
	"github.com/go-chi/chi/v5"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/client"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"net/http"
	"strings"
)

const maxEvents = 500

type castRequest struct {
	OptionIndex *int `json:"optionIndex"`
}

type receiptResponse struct {
	Status  string         `json:"status"`
	Receipt *chain.Receipt `json:"receipt,omitempty"`
}

func (s *server) createVote(w http.ResponseWriter, r *http.Request) {
	var form client.VoteForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	res, err := s.clientFor(r).CreateVote(r.Context(), form)
	if err != nil {
		ErrorJSON(w, r, err, txHash(res))
		return
	}
	JSON(w, http.StatusCreated, res)
}

func (s *server) listVotes(w http.ResponseWriter, r *http.Request) {
	views, err := s.clientFor(r).ListActiveVotes(r.Context())
	if err != nil {
		ErrorJSON(w, r, err, "")
		return
	}
	JSON(w, http.StatusOK, views)
}

func (s *server) getVote(w http.ResponseWriter, r *http.Request) {
	id, err := voteId(r)
	if err != nil {
		ErrorJSON(w, r, err, "")
		return
	}

	view, err := s.clientFor(r).GetVoteView(r.Context(), id)
	if err != nil {
		ErrorJSON(w, r, err, "")
		return
	}
	JSON(w, http.StatusOK, view)
}

func (s *server) castVote(w http.ResponseWriter, r *http.Request) {
	id, err := voteId(r)
	if err != nil {
		ErrorJSON(w, r, err, "")
		return
	}

	var req castRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil || req.OptionIndex == nil {
		badRequest(w, "optionIndex is required")
		return
	}

	res, err := s.clientFor(r).CastVote(r.Context(), id, *req.OptionIndex)
	if err != nil {
		ErrorJSON(w, r, err, txHash(res))
		return
	}
	JSON(w, http.StatusOK, res)
}

func (s *server) closeVote(w http.ResponseWriter, r *http.Request) {
	id, err := voteId(r)
	if err != nil {
		ErrorJSON(w, r, err, "")
		return
	}

	res, err := s.clientFor(r).CloseVote(r.Context(), id)
	if err != nil {
		ErrorJSON(w, r, err, txHash(res))
		return
	}
	JSON(w, http.StatusOK, res)
}

func (s *server) hasVoted(w http.ResponseWriter, r *http.Request) {
	id, err := voteId(r)
	if err != nil {
		ErrorJSON(w, r, err, "")
		return
	}

	voted, err := s.node.HasVoted(r.Context(), id, chi.URLParam(r, "address"))
	if err != nil {
		ErrorJSON(w, r, err, "")
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"hasVoted": voted})
}

func (s *server) getReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.node.TransactionReceipt(r.Context(), chi.URLParam(r, "hash"))
	switch {
	case errors.Is(err, chain.ErrUnknownTransaction):
		JSON(w, http.StatusNotFound, errorResponse{Error: "UnknownTransaction", Message: "No transaction with that hash."})
	case err != nil:
		ErrorJSON(w, r, err, "")
	case receipt == nil:
		JSON(w, http.StatusAccepted, receiptResponse{Status: "pending"})
	default:
		JSON(w, http.StatusOK, receiptResponse{Status: string(receipt.Status), Receipt: receipt})
	}
}

func (s *server) listEvents(w http.ResponseWriter, r *http.Request) {
	var after uint64
	limit := 100

	query := r.URL.Query()
	if v := query.Get("after"); v != "" {
		parsed, err := parseDecimal(v)
		if err != nil {
			badRequest(w, "after must be a sequence number")
			return
		}
		after = parsed
	}
	if v := query.Get("limit"); v != "" {
		parsed, err := parseDecimal(v)
		if err != nil || parsed == 0 {
			badRequest(w, "limit must be a positive number")
			return
		}
		if parsed < maxEvents {
			limit = int(parsed)
		} else {
			limit = maxEvents
		}
	}
	events, err := s.node.Events(r.Context(), after, limit)
	if err != nil {
		ErrorJSON(w, r, err, "")
		return
	}
	JSON(w, http.StatusOK, events)
}

func voteId(r *http.Request) (uint64, error) {
	id, err := parseDecimal(chi.URLParam(r, "id"))
	if err != nil {
		return 0, errBadVoteId
	}
	return id, nil
}

// parseDecimal accepts base 10 digits only, so "010" is 10 and "0x1" is rejected.
func parseDecimal(s string) (uint64, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, errors.Errorf("%q is not a decimal number", s)
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return 0, nil
	}
	return cast.ToUint64E(s)
}

func txHash(res interface{}) string {
	switch v := res.(type) {
	case *client.CreateResult:
		if v != nil {
			return v.TxHash
		}
	case *client.TxResult:
		if v != nil {
			return v.TxHash
		}
	}
	return ""
}
