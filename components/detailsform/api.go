package detailsform

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-userdetails/pkg/controller"
	"github.com/goliatone/go-userdetails/pkg/document"
	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/validation"
)

// Contract paths; they do not move with the mount point.
const (
	pathValidate = "/api/validate"
	pathLayout   = "/api/layout"
	pathPDF      = "/api/pdf"
)

const messageBodyTooLarge = "request body too large"

type layoutResponse struct {
	PhoneLabel string             `json:"phoneLabel"`
	Blocks     []layout.DrawBlock `json:"blocks"`
}

func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.readInput(w, r, pathValidate)
	if !ok {
		return
	}
	state := s.controller.View(controller.InitialState(), raw)
	writeJSON(w, http.StatusOK, validation.ResultFromErrors(state.Errors))
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.readInput(w, r, pathLayout)
	if !ok {
		return
	}
	state := s.controller.View(controller.InitialState(), raw)
	if len(state.Errors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, validation.ResultFromErrors(state.Errors))
		return
	}

	label := s.controller.PhoneLabel(controller.ParseScreen(r.URL.Query().Get("screen")))
	blocks := s.controller.Generator().Blocks(*state.Details, layout.WithPhoneLabel(label))
	writeJSON(w, http.StatusOK, layoutResponse{PhoneLabel: label, Blocks: blocks})
}

func (s *server) handlePDF(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.readInput(w, r, pathPDF)
	if !ok {
		return
	}

	state := controller.InitialState()
	input := &raw
	if controller.ParseScreen(r.URL.Query().Get("screen")) == controller.ScreenPreview {
		state = s.controller.View(state, raw)
		if len(state.Errors) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, validation.ResultFromErrors(state.Errors))
			return
		}
		input = nil
	}

	next, artifact := s.controller.Download(r.Context(), state, input)
	switch {
	case len(next.Errors) > 0:
		writeJSON(w, http.StatusUnprocessableEntity, validation.ResultFromErrors(next.Errors))
		return
	case artifact == nil:
		writeJSON(w, http.StatusInternalServerError, validation.Invalid(validation.Issue{Message: next.LastError}))
		return
	}

	if err := document.WriteAttachment(w, artifact); err != nil {
		s.logger.Warn("write attachment failed",
			zap.String("document_id", artifact.ID),
			zap.Error(err),
		)
	}
}

// readInput shape-checks the JSON body against the contract, writing a 400
// with every shape issue when it does not match.
func (s *server) readInput(w http.ResponseWriter, r *http.Request, path string) (model.RawInput, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, validation.Invalid(validation.Issue{Message: messageBodyTooLarge}))
			return model.RawInput{}, false
		}
		writeJSON(w, http.StatusBadRequest, validation.Invalid(validation.Issue{Message: err.Error()}))
		return model.RawInput{}, false
	}

	raw, result, err := s.contract.CheckRequest(http.MethodPost, path, body)
	if err != nil {
		s.logger.Error("contract check failed", zap.String("path", path), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, validation.Invalid(validation.Issue{Message: http.StatusText(http.StatusInternalServerError)}))
		return model.RawInput{}, false
	}
	if !result.Valid {
		writeJSON(w, http.StatusBadRequest, result)
		return model.RawInput{}, false
	}
	return raw, true
}
