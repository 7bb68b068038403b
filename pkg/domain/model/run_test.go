package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/secmon-lab/skoll/pkg/domain/types"
)

func TestRunConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := model.RunConfig{MaxUsers: 10, TargetClientID: "X"}
		gt.NoError(t, cfg.Validate())
	})

	t.Run("zero max users", func(t *testing.T) {
		cfg := model.RunConfig{MaxUsers: 0, TargetClientID: "X"}
		err := cfg.Validate()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidConfig))
	})

	t.Run("negative max users", func(t *testing.T) {
		cfg := model.RunConfig{MaxUsers: -1, TargetClientID: "X"}
		gt.Error(t, cfg.Validate())
	})

	t.Run("missing client ID", func(t *testing.T) {
		cfg := model.RunConfig{MaxUsers: 10}
		err := cfg.Validate()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidConfig))
	})
}

func TestRunConfig_Mode(t *testing.T) {
	gt.Equal(t, model.RunConfig{DryRun: true}.Mode(), types.RunModeDryRun)
	gt.Equal(t, model.RunConfig{}.Mode(), types.RunModeLive)
}

func TestNewPlanConfig(t *testing.T) {
	cfg := model.NewPlanConfig("X", "my_customer")
	gt.True(t, cfg.DryRun)
	gt.Equal(t, cfg.MaxUsers, model.DefaultPlanMaxUsers)
	gt.Equal(t, cfg.TargetClientID, types.ClientID("X"))
	gt.NoError(t, cfg.Validate())
}
