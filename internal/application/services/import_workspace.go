package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/reglet-dev/envseal/internal/application/dto"
	apperrors "github.com/reglet-dev/envseal/internal/application/errors"
	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/reglet-dev/envseal/internal/domain/entities"
	"github.com/reglet-dev/envseal/internal/domain/services"
)

// ImportWorkspaceUseCase orchestrates the "Import Workspace" action:
// choose a file, parse, restore secrets, hand the document to the host.
type ImportWorkspaceUseCase struct {
	source    ports.WorkspaceSource
	sink      ports.WorkspaceSink
	store     *SecretStore
	dialogs   ports.FileDialogs
	fs        ports.FileSystem
	validator ports.DocumentValidator
	sensitive ports.SensitiveValueProvider
	restorer  *SecretRestorer
	locator   *services.SecretLocator
	logger    *slog.Logger
}

// NewImportWorkspaceUseCase creates a new import use case.
// validator and sensitive may be nil.
func NewImportWorkspaceUseCase(
	source ports.WorkspaceSource,
	sink ports.WorkspaceSink,
	store *SecretStore,
	restorer *SecretRestorer,
	dialogs ports.FileDialogs,
	fs ports.FileSystem,
	validator ports.DocumentValidator,
	sensitive ports.SensitiveValueProvider,
	logger *slog.Logger,
) *ImportWorkspaceUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &ImportWorkspaceUseCase{
		source:    source,
		sink:      sink,
		store:     store,
		restorer:  restorer,
		dialogs:   dialogs,
		fs:        fs,
		validator: validator,
		sensitive: sensitive,
		locator:   services.NewSecretLocator(),
		logger:    logger,
	}
}

// Execute runs one import pass.
func (uc *ImportWorkspaceUseCase) Execute(ctx context.Context, req dto.ImportWorkspaceRequest) (*dto.ImportWorkspaceResponse, error) {
	ws := req.Workspace
	resp := &dto.ImportWorkspaceResponse{PassID: uuid.NewString()}
	logger := uc.logger.With("pass_id", resp.PassID, "workspace_id", ws.ID)

	// 1. Choose a file
	defaultPath := defaultDialogPath
	if path, ok, err := uc.store.GetPath(ctx, ws.ID); err != nil {
		return nil, err
	} else if ok && path != "" {
		defaultPath = path
	}

	result, err := uc.dialogs.ShowOpenDialog(ctx, ports.DialogOptions{
		Title:       "Import Workspace",
		ButtonLabel: "Load",
		DefaultPath: defaultPath,
		Filters:     []ports.FileFilter{ports.JSONFilter},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to show open dialog: %w", err)
	}
	if result.Canceled || len(result.FilePaths) == 0 {
		logger.Info("import canceled")
		resp.Canceled = true
		return resp, nil
	}
	path := result.FilePaths[0]

	if err := uc.store.SetPath(ctx, ws.ID, path); err != nil {
		return nil, err
	}

	// 2. Read and parse
	data, err := uc.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	if uc.validator != nil {
		if err := uc.validator.Validate(data); err != nil {
			return nil, err
		}
	}

	doc, err := entities.ParseDocument(data)
	if err != nil {
		return nil, apperrors.NewValidationError("document", "failed to parse import file", err)
	}

	// 3. Locate, then compare with the live workspace
	secrets := uc.locator.Locate(doc)
	logger.Info("secrets located", "count", len(secrets))

	live, err := uc.liveDocument(ctx, ws, logger)
	if err != nil {
		return nil, err
	}

	// 4. Resolve, persist and inject
	restored, err := uc.restorer.Restore(ctx, ws.ID, doc, secrets, live)
	if err != nil {
		return nil, err
	}
	for _, secret := range restored {
		if uc.sensitive != nil {
			uc.sensitive.Track(secret.Value)
		}
	}
	resp.Restored = restored

	// 5. Hand back to the host
	encoded, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode restored document: %w", err)
	}
	if err := uc.sink.ImportRaw(ctx, encoded, ports.ImportOptions{WorkspaceID: ws.ID}); err != nil {
		return nil, fmt.Errorf("failed to import workspace %s: %w", ws.ID, err)
	}

	resp.FilePath = path
	counts := dto.CountBySource(restored)
	logger.Info("workspace imported",
		"path", path,
		"live", counts[dto.SourceLive],
		"store", counts[dto.SourceStore],
		"prompt", counts[dto.SourcePrompt],
	)
	return resp, nil
}

// liveDocument fetches the host's current copy of the workspace.
// A workspace unknown to the host or an unreadable export yields nil.
func (uc *ImportWorkspaceUseCase) liveDocument(ctx context.Context, ws ports.WorkspaceRef, logger *slog.Logger) (*entities.Document, error) {
	raw, err := uc.source.Export(ctx, ports.ExportOptions{
		IncludePrivate: true,
		Format:         "json",
		Workspace:      ws,
	})
	if errors.Is(err, ports.ErrWorkspaceNotFound) {
		logger.Debug("no live workspace to compare with")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export live workspace %s: %w", ws.ID, err)
	}

	live, err := entities.ParseDocument(raw)
	if err != nil {
		logger.Warn("ignoring unreadable live workspace", "error", err)
		return nil, nil
	}
	return live, nil
}
