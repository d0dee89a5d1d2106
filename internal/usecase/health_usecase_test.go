package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio-contact-api/internal/usecase"
)

type staticConfigured bool

func (s staticConfigured) IsConfigured() bool { return bool(s) }

func TestHealthCheck(t *testing.T) {
	t.Run("nothing wired", func(t *testing.T) {
		got := usecase.NewHealthUsecase(usecase.HealthDeps{}).Check(context.Background())
		assert.Equal(t, map[string]string{"status": "ok", "redis": "disabled", "email": "unconfigured"}, got)
	})

	t.Run("redis down", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(usecase.HealthDeps{
			RedisPing: func(context.Context) error { return errors.New("dial tcp: refused") },
			Email:     staticConfigured(true),
		})
		got := uc.Check(context.Background())
		assert.Equal(t, "ok", got["status"])
		assert.Equal(t, "degraded", got["redis"])
		assert.Equal(t, "configured", got["email"])
	})

	t.Run("redis up", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(usecase.HealthDeps{
			RedisPing: func(context.Context) error { return nil },
		})
		assert.Equal(t, "ok", uc.Check(context.Background())["redis"])
	})
}
