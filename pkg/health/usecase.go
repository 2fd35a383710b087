package health

import (
	"context"
	"fmt"
)

// Liveness is the fixed payload of the liveness probe.
type Liveness struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Alive never touches dependencies: it answers as long as the process runs.
func Alive() Liveness {
	return Liveness{Status: "healthy", Message: "Chatbot is running"}
}

// Readiness is the readiness probe report.
type Readiness struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// Report turns a Ready result into the probe payload.
func Report(err error) Readiness {
	if err != nil {
		return Readiness{Status: "not_ready", Details: err.Error()}
	}
	return Readiness{Status: "ready"}
}

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) error {
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			return fmt.Errorf("%s: %w", ch.Name(), err)
		}
	}
	return nil
}
