package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func SendJSONOrLog(w http.ResponseWriter,
	logger *slog.Logger,
	v any,
) {
	_, err := SendJSON(w, v)
	if err != nil {
		logger.Error(
			"failed to send data",
			slog.Any("data", v),
			slog.Any("error", err),
		)
	}
}

func SendMessageOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	m string,
) {
	_, err := SendJSON(w, map[string]string{
		"message": m,
	})
	if err != nil {
		logger.Error(
			"failed to send message",
			slog.String("message", m),
			slog.Any("error", err),
		)
	}
}

// sendStatus is SendJSONOrLog with a status other than 200.
func sendStatus(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	SendJSONOrLog(w, logger, v)
}

func sendError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	sendStatus(w, logger, status, wrapError(err))
}

func internalError(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	sendStatus(w, logger, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
