package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// HealthDeps are optional probes. A nil RedisPing means redis is disabled.
type HealthDeps struct {
	RedisPing func(ctx context.Context) error
	Email     interface{ IsConfigured() bool }
}

type healthUsecase struct {
	deps HealthDeps
}

func NewHealthUsecase(deps HealthDeps) HealthUsecase {
	return &healthUsecase{deps: deps}
}

// Check never fails: a broken redis only degrades rate limiting to memory.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
		"redis":  "disabled",
		"email":  "unconfigured",
	}

	if u.deps.RedisPing != nil {
		status["redis"] = "ok"
		if err := u.deps.RedisPing(ctx); err != nil {
			status["redis"] = "degraded"
		}
	}
	if u.deps.Email != nil && u.deps.Email.IsConfigured() {
		status["email"] = "configured"
	}

	return status
}
