package handle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"brainy-ai/api/internal/solve"
	"brainy-ai/api/internal/util"
)

// SolveRequest is the JSON form of /v1/solve. ImageB64 may be a data URL.
type SolveRequest struct {
	Prompt   string `json:"prompt"`
	ImageB64 string `json:"image_b64"`
	MimeType string `json:"mime_type,omitempty"`
}

type SolveResponse struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

var errUnreadableBase64 = errors.New("bad image_b64")

func (h *Handle) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "POST only"})
		return
	}
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	prompt, upload, err := h.readInput(r)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return
		}
		if errors.Is(err, errUnreadableBase64) {
			writeError(w, solve.ErrUnreadableImage)
			return
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad request: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deadline(r))
	defer cancel()

	res, err := h.solver.Solve(ctx, prompt, upload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SolveResponse{Text: res.Text})
}

// readInput accepts multipart/form-data (prompt + image file) or JSON.
// A missing image yields a nil upload so the collector classifies it.
func (h *Handle) readInput(r *http.Request) (string, *solve.Upload, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			return "", nil, err
		}
		prompt := r.FormValue("prompt")
		f, fh, err := r.FormFile("image")
		if errors.Is(err, http.ErrMissingFile) {
			return prompt, nil, nil
		}
		if err != nil {
			return "", nil, err
		}
		// файл читается коллектором; multipart держит его до конца запроса
		return prompt, &solve.Upload{
			Filename: fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Body:     f,
		}, nil
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(req.ImageB64) == "" {
		return req.Prompt, nil, nil
	}
	img, hint, err := util.DecodeBase64MaybeDataURL(req.ImageB64)
	if err != nil {
		return "", nil, errUnreadableBase64
	}
	return req.Prompt, &solve.Upload{
		MIMEType: util.PickMIME(req.MimeType, hint, img),
		Body:     bytes.NewReader(img),
	}, nil
}

func (h *Handle) deadline(r *http.Request) time.Duration {
	d := h.defaultTimeout
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			d = time.Duration(v) * time.Second
		}
	} else if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			d = time.Duration(v) * time.Second
		}
	}
	if d <= 0 {
		d = 180 * time.Second
	}
	return d
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusBadGateway
	switch {
	case solve.IsValidation(err):
		code = http.StatusBadRequest
	case errors.Is(err, solve.ErrSafetyBlocked):
		code = http.StatusUnprocessableEntity
	}
	writeJSON(w, code, ErrorResponse{Error: solve.UserMessage(err), Kind: solve.Kind(err)})
}
