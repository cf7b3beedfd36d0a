package solve

import (
	"context"
	"io"
)

// Upload: сырое изображение от фронтенда. nil означает «картинки нет».
type Upload struct {
	Filename string // только для логов
	MIMEType string // может быть пустым, тогда определяем по байтам
	Body     io.Reader
}

// UserRequest is one validated submission. Both fields are non-empty.
type UserRequest struct {
	PromptText    string
	Image         []byte
	ImageMIMEType string
}

type ResultKind int

const (
	ResultText ResultKind = iota
	ResultBlocked
	ResultEmpty
)

func (k ResultKind) String() string {
	switch k {
	case ResultText:
		return "text"
	case ResultBlocked:
		return "blocked"
	case ResultEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Result is the decoded model response. Text is set only for ResultText.
type Result struct {
	Kind ResultKind
	Text string
}

// Err maps the non-text variants onto their errors.
func (r Result) Err() error {
	switch r.Kind {
	case ResultText:
		return nil
	case ResultBlocked:
		return ErrSafetyBlocked
	default:
		return ErrEmptyResponse
	}
}

// Gateway performs exactly one model invocation per call.
type Gateway interface {
	Name() string
	GenerateSolution(ctx context.Context, req UserRequest, instruction string, policy SafetyPolicy) (Result, error)
}
