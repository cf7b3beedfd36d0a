package solve

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// Solver wires the input collector to a gateway. It holds no per-request
// state and may be shared by any number of front-end sessions.
type Solver struct {
	gw          Gateway
	instruction string
	policy      SafetyPolicy
}

func NewSolver(gw Gateway, instruction string, policy SafetyPolicy) *Solver {
	return &Solver{gw: gw, instruction: instruction, policy: policy}
}

func (s *Solver) Gateway() Gateway { return s.gw }

// Solve runs one submission end to end. On success the result kind is
// always ResultText; every other outcome comes back as an error.
func (s *Solver) Solve(ctx context.Context, promptText string, image *Upload) (Result, error) {
	rid := uuid.NewString()

	name := "-"
	if image != nil && image.Filename != "" {
		name = image.Filename
	}

	req, err := Collect(promptText, image)
	if err != nil {
		log.Printf("[%s] rejected file=%s: %v", rid, name, err)
		return Result{}, err
	}

	start := time.Now()
	log.Printf("[%s] %s: prompt=%d chars file=%s image=%s %d bytes", rid, s.gw.Name(), len(req.PromptText), name, req.ImageMIMEType, len(req.Image))

	res, err := s.gw.GenerateSolution(ctx, req, s.instruction, s.policy)
	if err == nil {
		err = res.Err()
	}
	if err != nil {
		var ext *ExternalServiceError
		if errors.As(err, &ext) {
			log.Printf("[%s] external error after %v: %v", rid, time.Since(start), err)
		} else {
			log.Printf("[%s] %s after %v", rid, Kind(err), time.Since(start))
		}
		return res, err
	}

	log.Printf("[%s] ok in %v: %d chars", rid, time.Since(start), len(res.Text))
	return res, nil
}
