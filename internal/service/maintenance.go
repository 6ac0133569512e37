package service

import (
	"context"
	"strings"

	"library-cms/internal/domain/maintenance"
	"library-cms/internal/domain/user"
	"library-cms/internal/policy"
	"library-cms/internal/rbac/presets"
	apperrors "library-cms/pkg/errors"
)

const msgMaintenanceStateFail = "Failed to read maintenance state"

type MaintenanceService struct {
	store  MaintenanceStore
	policy *policy.Policy
	deps
}

func NewMaintenanceService(store MaintenanceStore, pol *policy.Policy, opts Options) *MaintenanceService {
	return &MaintenanceService{store: store, policy: pol, deps: newDeps(opts)}
}

// Status returns the current flag. It is read on every mutating request.
func (s *MaintenanceService) Status(ctx context.Context) (maintenance.State, error) {
	state, err := s.store.Get(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read maintenance state")
		return maintenance.State{}, apperrors.Upstream(msgMaintenanceStateFail)
	}
	if state.Enabled && state.Message == "" {
		state.Message = maintenance.DefaultMessage
	}
	return state, nil
}

func (s *MaintenanceService) Set(ctx context.Context, input maintenance.UpdateStateInput, actor *user.Actor) (maintenance.State, error) {
	if err := s.policy.Authorize(actor, presets.ResourceMaintenance, presets.ActionManage); err != nil {
		return maintenance.State{}, err
	}

	now := s.clock.Now().UTC()
	state := maintenance.State{
		Enabled:   input.Enabled,
		Message:   strings.TrimSpace(input.Message),
		UpdatedBy: &actor.ID,
		UpdatedAt: &now,
	}
	if err := s.store.Set(ctx, state); err != nil {
		s.log.Error().Err(err).Msg("failed to store maintenance state")
		return maintenance.State{}, apperrors.Upstream(msgMaintenanceStateFail)
	}

	s.log.Warn().Bool("enabled", state.Enabled).Str("actor_id", actor.ID.String()).Msg("maintenance mode changed")
	return state, nil
}
