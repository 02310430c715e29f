package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"lotuslab/internal/domain"
	"lotuslab/internal/httputil"
)

// Error codes carried in the "code" member of every problem document.
const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeNotFound       = "NOT_FOUND"
	CodeNoOp           = "NO_OP"
	CodeDuplicateName  = "DUPLICATE_NAME"
	CodeTargetNotFound = "TARGET_NOT_FOUND"
	CodeCycleDetected  = "CYCLE_DETECTED"
	CodeRootFolder     = "ROOT_FOLDER"
	CodeDBError        = "DB_ERROR"
	CodeUnknownCommand = "UNKNOWN_COMMAND"
	CodeInternal       = "INTERNAL"
)

// classify maps an error to its status and code. Order matters:
// TargetNotFound is checked before NotFound since a message may mention both.
func classify(err error) (int, string) {
	var dbErr *domain.DBError
	switch {
	case errors.Is(err, ErrUnknownCommand):
		return http.StatusNotFound, CodeUnknownCommand
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusConflict, CodeDuplicateName
	case errors.Is(err, domain.ErrTargetNotFound):
		return http.StatusUnprocessableEntity, CodeTargetNotFound
	case errors.Is(err, domain.ErrCycleDetected):
		return http.StatusUnprocessableEntity, CodeCycleDetected
	case errors.Is(err, domain.ErrRootFolder):
		return http.StatusUnprocessableEntity, CodeRootFolder
	case errors.Is(err, domain.ErrNoOp):
		return http.StatusUnprocessableEntity, CodeNoOp
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.As(err, &dbErr):
		return http.StatusInternalServerError, CodeDBError
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// handleError converts domain errors to problem responses. Server-side
// failures are logged with their cause and answered with a generic detail.
func handleError(w http.ResponseWriter, logger *slog.Logger, command string, err error) {
	status, code := classify(err)

	if status >= http.StatusInternalServerError {
		logger.Error("command failed",
			"command", command,
			"code", code,
			"error", err,
		)
		detail := "internal server error"
		if code == CodeDBError {
			detail = "database error"
		}
		httputil.RespondError(w, status, code, detail)
		return
	}

	logger.Debug("command rejected", "command", command, "code", code, "error", err)

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		httputil.RespondErrorWithExtras(w, status, code, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
		return
	}

	httputil.RespondError(w, status, code, err.Error())
}
