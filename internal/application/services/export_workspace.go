package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/reglet-dev/envseal/internal/application/dto"
	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/reglet-dev/envseal/internal/domain/entities"
	"github.com/reglet-dev/envseal/internal/domain/services"
	"github.com/reglet-dev/envseal/internal/domain/values"
)

const defaultDialogPath = "."

// ExportWorkspaceUseCase orchestrates the "Export Workspace" action:
// fetch, locate, purge, persist and redact, sort, choose a path, write.
type ExportWorkspaceUseCase struct {
	source         ports.WorkspaceSource
	store          *SecretStore
	dialogs        ports.FileDialogs
	fs             ports.FileSystem
	leakScanner    ports.LeakScanner
	sensitive      ports.SensitiveValueProvider
	locator        *services.SecretLocator
	redactor       *services.SecretRedactor
	sorter         *services.ResourceSorter
	logger         *slog.Logger
	includePrivate bool
}

// NewExportWorkspaceUseCase creates a new export use case.
// leakScanner and sensitive may be nil.
func NewExportWorkspaceUseCase(
	source ports.WorkspaceSource,
	store *SecretStore,
	dialogs ports.FileDialogs,
	fs ports.FileSystem,
	leakScanner ports.LeakScanner,
	sensitive ports.SensitiveValueProvider,
	includePrivate bool,
	logger *slog.Logger,
) *ExportWorkspaceUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &ExportWorkspaceUseCase{
		source:         source,
		store:          store,
		dialogs:        dialogs,
		fs:             fs,
		leakScanner:    leakScanner,
		sensitive:      sensitive,
		locator:        services.NewSecretLocator(),
		redactor:       services.NewSecretRedactor(),
		sorter:         services.NewResourceSorter(),
		includePrivate: includePrivate,
		logger:         logger,
	}
}

// Execute runs one export pass.
func (uc *ExportWorkspaceUseCase) Execute(ctx context.Context, req dto.ExportWorkspaceRequest) (*dto.ExportWorkspaceResponse, error) {
	ws := req.Workspace
	resp := &dto.ExportWorkspaceResponse{PassID: uuid.NewString()}
	logger := uc.logger.With("pass_id", resp.PassID, "workspace_id", ws.ID)

	// 1. Fetch the live document
	raw, err := uc.source.Export(ctx, ports.ExportOptions{
		IncludePrivate: uc.includePrivate,
		Format:         "json",
		Workspace:      ws,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export workspace %s: %w", ws.ID, err)
	}

	doc, err := entities.ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workspace export: %w", err)
	}

	// 2. Locate
	secrets := uc.locator.Locate(doc)
	for _, secret := range secrets {
		uc.track(secret.Value)
	}
	resp.Secrets = len(secrets)
	logger.Info("secrets located", "count", len(secrets))

	// 3. Drop entries of fields that no longer exist
	resp.Purged, err = uc.store.PurgeExcept(ctx, ws.ID, []values.StoreKey{values.FilePathKey(ws.ID)})
	if err != nil {
		return nil, err
	}
	logger.Debug("stale store entries purged", "count", resp.Purged)

	// 4. Persist, then redact
	resp.Redaction = &services.RedactionReport{Results: make([]services.RedactionResult, 0, len(secrets))}
	for _, secret := range secrets {
		if err := uc.store.Set(ctx, ws.ID, secret.EnvID, secret.Field, secret.Value); err != nil {
			return nil, err
		}

		result := services.RedactionResult{Secret: secret, Err: uc.redactor.RedactSecret(doc, secret)}
		if !result.OK() {
			logger.Warn("failed to redact secret", "env_id", secret.EnvID, "field", secret.Field, "error", result.Err)
		}
		resp.Redaction.Results = append(resp.Redaction.Results, result)
	}

	// 5. Stable order for diffs
	uc.sorter.Sort(doc)

	resp.Leaks = uc.scanLeaks(doc)
	for _, leak := range resp.Leaks {
		logger.Warn("value looks like an untagged secret", "env_id", leak.EnvID, "field", leak.Field, "rule", leak.RuleID)
	}

	encoded, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	// 6. Choose a location
	defaultPath, err := uc.defaultPath(ctx, ws.ID)
	if err != nil {
		return nil, err
	}

	result, err := uc.dialogs.ShowSaveDialog(ctx, ports.DialogOptions{
		Title:       "Export Workspace",
		ButtonLabel: "Save",
		DefaultPath: defaultPath,
		Filters:     []ports.FileFilter{ports.JSONFilter},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to show save dialog: %w", err)
	}
	if result.Canceled || result.FilePath == "" {
		logger.Info("export canceled")
		resp.Canceled = true
		return resp, nil
	}

	// 7. Remember and write
	if err := uc.store.SetPath(ctx, ws.ID, result.FilePath); err != nil {
		return nil, err
	}
	if err := uc.fs.WriteFile(result.FilePath, encoded); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	resp.FilePath = result.FilePath
	logger.Info("workspace exported", "path", result.FilePath, "secrets", resp.Secrets, "redacted", resp.Redaction.Redacted())
	return resp, nil
}

func (uc *ExportWorkspaceUseCase) defaultPath(ctx context.Context, workspaceID string) (string, error) {
	path, ok, err := uc.store.GetPath(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	if !ok || path == "" {
		return defaultDialogPath, nil
	}
	return path, nil
}

// scanLeaks inspects untagged string values of environments.
func (uc *ExportWorkspaceUseCase) scanLeaks(doc *entities.Document) []ports.LeakFinding {
	if uc.leakScanner == nil {
		return nil
	}

	var findings []ports.LeakFinding
	for _, env := range doc.Environments() {
		for _, name := range env.FieldNames() {
			if name == entities.SecretsKeyField {
				continue
			}
			text, ok := stringField(env, name)
			if !ok {
				continue
			}
			for _, rule := range uc.leakScanner.Scan(text) {
				findings = append(findings, ports.LeakFinding{EnvID: env.ID(), Field: name, RuleID: rule})
			}
		}
	}
	return findings
}

// stringField returns the text of a scalar string field.
func stringField(resource *entities.Resource, name string) (string, bool) {
	field, ok := resource.ClassifiedField(name)
	if !ok || field.Kind() != entities.FieldScalar {
		return "", false
	}
	var text string
	if err := json.Unmarshal(field.Raw(), &text); err != nil {
		return "", false
	}
	return text, text != ""
}

func (uc *ExportWorkspaceUseCase) track(value string) {
	if uc.sensitive != nil {
		uc.sensitive.Track(value)
	}
}
