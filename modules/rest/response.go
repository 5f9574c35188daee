package rest

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/lordralex/ballot/api/logger"
	"github.com/lordralex/ballot/client"
	"github.com/lordralex/ballot/ledger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"net/http"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	TxHash  string `json:"txHash,omitempty"`
}

// JSON writes data with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Err().Printf("Failed to encode response: %s\n", err)
	}
}

// ErrorJSON writes err as its kind and user message; txHash is set when a write was
// submitted before failing.
func ErrorJSON(w http.ResponseWriter, r *http.Request, err error, txHash string) {
	kind := client.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		kind = "Internal"
		logger.WithFields(logrus.Fields{
			"request": w.Header().Get(requestIdHeader),
			"path":    r.URL.Path,
		}).Error(err)
	}

	JSON(w, status, errorResponse{Error: kind, Message: client.UserMessage(err), TxHash: txHash})
}

func badRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: "BadRequest", Message: message})
}

func statusFor(kind string) int {
	switch kind {
	case "InvalidOptions", "InvalidTimeRange", "InvalidOption", "InvalidForm", "WalletRejected":
		return http.StatusBadRequest
	case "WalletNotConnected":
		return http.StatusUnauthorized
	case "Unauthorized":
		return http.StatusForbidden
	case "VoteNotFound":
		return http.StatusNotFound
	case "AlreadyVoted", "AlreadyClosed", "VotingClosed":
		return http.StatusConflict
	case "PoolFull", "Unavailable":
		return http.StatusServiceUnavailable
	case "ConfirmationTimeout":
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

var errBadVoteId = errors.Wrap(ledger.ErrVoteNotFound, "vote id is not a number")
