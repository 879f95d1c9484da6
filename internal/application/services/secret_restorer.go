package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/reglet-dev/envseal/internal/application/dto"
	apperrors "github.com/reglet-dev/envseal/internal/application/errors"
	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/reglet-dev/envseal/internal/domain/entities"
)

// SecretRestorer fills located secrets of an import document with plaintexts.
//
// Precedence per secret: the live workspace's value, then the persisted value,
// then the operator. In confirm-all mode the operator is asked for every
// secret, with the first available candidate pre-filled.
type SecretRestorer struct {
	store      *SecretStore
	prompter   ports.Prompter
	logger     *slog.Logger
	confirmAll bool
}

// NewSecretRestorer creates a new secret restorer.
func NewSecretRestorer(store *SecretStore, prompter ports.Prompter, confirmAll bool, logger *slog.Logger) *SecretRestorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SecretRestorer{
		store:      store,
		prompter:   prompter,
		confirmAll: confirmAll,
		logger:     logger,
	}
}

// Restore resolves, persists and injects every located secret into doc.
// live may be nil when the host has no copy of the workspace.
func (r *SecretRestorer) Restore(
	ctx context.Context,
	workspaceID string,
	doc *entities.Document,
	secrets []entities.LocatedSecret,
	live *entities.Document,
) ([]dto.ResolvedSecret, error) {
	ordered := slices.Clone(secrets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EnvSortKey < ordered[j].EnvSortKey
	})

	resolved := make([]dto.ResolvedSecret, 0, len(ordered))
	for _, secret := range ordered {
		value, source, err := r.resolve(ctx, workspaceID, secret, live)
		if err != nil {
			return nil, err
		}

		if err := r.store.Set(ctx, workspaceID, secret.EnvID, secret.Field, value); err != nil {
			return nil, err
		}

		secret.Value = value
		resolved = append(resolved, dto.ResolvedSecret{LocatedSecret: secret, Source: source})
		r.logger.Debug("secret resolved", "env_id", secret.EnvID, "field", secret.Field, "source", source)
	}

	for _, secret := range resolved {
		if err := doc.SetMarker(secret.EnvID, secret.Field, secret.Value); err != nil {
			return nil, fmt.Errorf("failed to restore secret %s: %w", secret.Ref(), err)
		}
	}

	return resolved, nil
}

func (r *SecretRestorer) resolve(
	ctx context.Context,
	workspaceID string,
	secret entities.LocatedSecret,
	live *entities.Document,
) (string, dto.SecretSource, error) {
	liveValue := liveSecret(live, secret)

	stored, _, err := r.store.Get(ctx, workspaceID, secret.EnvID, secret.Field)
	if err != nil {
		return "", "", err
	}

	if !r.confirmAll {
		if liveValue != "" {
			return liveValue, dto.SourceLive, nil
		}
		if stored != "" {
			return stored, dto.SourceStore, nil
		}
	}

	defaultValue := liveValue
	if defaultValue == "" {
		defaultValue = stored
	}

	value, err := r.prompter.Prompt(ctx, fmt.Sprintf("Enter secret value for Environment %q", secret.EnvName), ports.PromptOptions{
		Label:        secret.Field,
		DefaultValue: defaultValue,
		SubmitName:   "Ok",
		Cancelable:   false,
	})
	if err != nil {
		return "", "", apperrors.NewResolutionError(secret.EnvID, secret.EnvName, secret.Field, err)
	}
	return value, dto.SourcePrompt, nil
}

// liveSecret returns the live workspace's value for the same field, or "" when
// the resource or field is absent.
func liveSecret(live *entities.Document, secret entities.LocatedSecret) string {
	if live == nil {
		return ""
	}
	resource, ok := live.FindResource(secret.EnvID)
	if !ok {
		return ""
	}
	field, ok := resource.ClassifiedField(secret.Field)
	if !ok || !field.IsSecret() {
		return ""
	}
	return field.Secret()
}
