package service

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"library-cms/internal/domain/asset"
	"library-cms/internal/domain/user"
	"library-cms/internal/policy"
	"library-cms/internal/rbac/presets"
	apperrors "library-cms/pkg/errors"

	"golang.org/x/sync/errgroup"
)

const (
	msgBackupExportFail = "Failed to export backup"
	msgBackupUploadFail = "Failed to upload backup"

	backupKeyTimeFormat = "20060102T150405Z"
	backupContentType   = "application/json"
	backupConcurrency   = 4
)

// BackupManifest describes a stored backup.
type BackupManifest struct {
	Key       string         `json:"key"`
	URL       string         `json:"url"`
	CreatedAt time.Time      `json:"createdAt"`
	Tables    map[string]int `json:"tables"`
	SizeBytes int            `json:"sizeBytes"`
}

type backupDocument struct {
	CreatedAt time.Time                    `json:"createdAt"`
	Tables    map[string][]json.RawMessage `json:"tables"`
}

// BackupService dumps every table into a single JSON object in the asset bucket.
type BackupService struct {
	source BackupSource
	writer ObjectWriter
	policy *policy.Policy
	deps
}

func NewBackupService(source BackupSource, writer ObjectWriter, pol *policy.Policy, opts Options) *BackupService {
	return &BackupService{source: source, writer: writer, policy: pol, deps: newDeps(opts)}
}

// Create runs a backup on behalf of actor.
func (s *BackupService) Create(ctx context.Context, actor *user.Actor) (*BackupManifest, error) {
	if err := s.policy.Authorize(actor, presets.ResourceBackup, presets.ActionManage); err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

// Run performs the backup without an actor. It is used by the CLI.
func (s *BackupService) Run(ctx context.Context) (*BackupManifest, error) {
	createdAt := s.clock.Now().UTC()
	doc := backupDocument{CreatedAt: createdAt, Tables: make(map[string][]json.RawMessage)}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(backupConcurrency)
	for _, table := range s.source.Tables() {
		table := table
		g.Go(func() error {
			rows, err := s.source.ExportTable(gctx, table)
			if err != nil {
				s.log.Error().Err(err).Str("table", table).Msg("failed to export table")
				return err
			}
			if rows == nil {
				rows = []json.RawMessage{}
			}
			mu.Lock()
			doc.Tables[table] = rows
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Upstream(msgBackupExportFail)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode backup")
		return nil, apperrors.Upstream(msgBackupExportFail)
	}

	key := path.Join(asset.FolderBackups, createdAt.Format(backupKeyTimeFormat)+".json")
	url, err := s.writer.PutObject(ctx, key, backupContentType, data)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to upload backup")
		return nil, apperrors.Upstream(msgBackupUploadFail)
	}

	manifest := &BackupManifest{
		Key:       key,
		URL:       url,
		CreatedAt: createdAt,
		Tables:    make(map[string]int, len(doc.Tables)),
		SizeBytes: len(data),
	}
	for table, rows := range doc.Tables {
		manifest.Tables[table] = len(rows)
	}
	s.log.Info().Str("key", key).Int("size_bytes", len(data)).Msg("backup stored")
	return manifest, nil
}
