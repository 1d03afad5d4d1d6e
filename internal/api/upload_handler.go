package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabinete-digital/gabinete-api/internal/api/shared"
	"github.com/gabinete-digital/gabinete-api/internal/upload"
)

// Upload messages.
const (
	MsgUploadNoFile  = "Nenhum arquivo enviado"
	MsgUploadSuccess = "Arquivo enviado com sucesso"
	MsgUploadFailed  = "Erro ao enviar arquivo"

	MsgUploadPathMissing = "Caminho do arquivo não informado"
	MsgUploadNotFound    = "Arquivo não encontrado"
	MsgUploadDeleted     = "Arquivo removido com sucesso"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const multipartMemory = 32 << 20

// FileStore saves and removes uploaded content.
type FileStore interface {
	Save(ctx context.Context, r io.Reader, originalName string) (*upload.Result, error)
	Delete(ctx context.Context, publicPath string) error
	MaxBytes() int64
}

// UploadHandler handles POST and DELETE /api/upload.
type UploadHandler struct {
	files     FileStore
	responder *shared.Responder
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(files FileStore, responder *shared.Responder) *UploadHandler {
	return &UploadHandler{files: files, responder: responder}
}

// Upload stores the multipart field "file" and returns its public path.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// room for the multipart framing around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.files.MaxBytes()+multipartMemory)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(w, r, fmt.Errorf("%w: %v", upload.ErrTooLarge, err))
			return
		}
		h.responder.RespondWithErrorAndLog(w, r, StatusBadRequest, http.StatusBadRequest, MsgUploadNoFile, err)
		return
	}
	defer file.Close()

	if header.Size > h.files.MaxBytes() {
		h.fail(w, r, upload.ErrTooLarge)
		return
	}

	result, err := h.files.Save(r.Context(), file, header.Filename)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.responder.Respond(w, r, StatusSuccess, http.StatusOK,
		shared.WithMessage(MsgUploadSuccess),
		shared.WithData(UploadResponse{FilePath: result.PublicPath}),
	)
}

// Delete removes the file named by the file_path query parameter, as
// returned by Upload.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	filePath := strings.TrimSpace(r.URL.Query().Get("file_path"))
	if filePath == "" {
		h.responder.Respond(w, r, StatusBadRequest, http.StatusBadRequest, shared.WithMessage(MsgUploadPathMissing))
		return
	}

	if err := h.files.Delete(r.Context(), filePath); err != nil {
		if errors.Is(err, upload.ErrNotFound) {
			h.responder.RespondWithErrorAndLog(w, r, StatusNotFound, http.StatusNotFound, MsgUploadNotFound, err)
			return
		}
		h.fail(w, r, err)
		return
	}

	h.responder.Respond(w, r, StatusSuccess, http.StatusOK, shared.WithMessage(MsgUploadDeleted))
}

func (h *UploadHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, upload.ErrTypeNotAllowed),
		errors.Is(err, upload.ErrTooLarge),
		errors.Is(err, upload.ErrExists):
		h.responder.RespondWithErrorAndLog(w, r, StatusBadRequest, http.StatusBadRequest, MsgUploadFailed, err)
	default:
		h.responder.RespondWithErrorAndLog(w, r, StatusInternalError, http.StatusInternalServerError, MsgInternalError, err)
	}
}
