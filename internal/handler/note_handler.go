package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"noti-server/internal/domain"
	"noti-server/internal/repository"
	"noti-server/internal/service"
	"noti-server/pkg/response"
)

type NoteHandler struct {
	service  *service.NoteService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewNoteHandler(service *service.NoteService, logger zerolog.Logger) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	note, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.storageFault(w, r, err)
		return
	}

	response.Created(w, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.ListAll(r.Context())
	if err != nil {
		h.storageFault(w, r, err)
		return
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	note, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.storageFault(w, r, err)
		return
	}
	if note == nil {
		response.NotFound(w)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	note, err := h.service.Update(r.Context(), id, &req)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		h.storageFault(w, r, err)
		return
	}
	if note == nil {
		response.NotFound(w)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.storageFault(w, r, err)
		return
	}
	if !deleted {
		response.NotFound(w)
		return
	}

	response.NoContent(w)
}

func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")

	notes, err := h.service.Search(r.Context(), keyword)
	if err != nil {
		h.storageFault(w, r, err)
		return
	}

	response.Success(w, notes)
}

// SearchByTitle keeps the original public API's French parameter name.
func (h *NoteHandler) SearchByTitle(w http.ResponseWriter, r *http.Request) {
	titre := r.URL.Query().Get("titre")

	notes, err := h.service.SearchByTitle(r.Context(), titre)
	if err != nil {
		h.storageFault(w, r, err)
		return
	}

	response.Success(w, notes)
}

// storageFault applies the uniform fault policy: log the cause, answer 500
// with a generic body.
func (h *NoteHandler) storageFault(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("storage fault")
	response.InternalError(w, "Internal server error")
}

func noteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Note ID must be an integer")
		return 0, false
	}
	return id, true
}
