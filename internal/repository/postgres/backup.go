package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// backupTables lists every table a backup exports, in dependency order.
var backupTables = []string{
	tableLibraries,
	tableUsers,
	tableStories,
	tableEvents,
	tableMedia,
	tableMessages,
	tableMessageResponses,
	tableAnalyticsEvents,
}

// BackupSource exports whole tables as JSON documents, one per row.
type BackupSource struct {
	db querier
}

func NewBackupSource(db *DB) *BackupSource {
	return &BackupSource{db: db.Pool}
}

func (s *BackupSource) Tables() []string {
	return slices.Clone(backupTables)
}

func (s *BackupSource) ExportTable(ctx context.Context, table string) ([]json.RawMessage, error) {
	if !slices.Contains(backupTables, table) {
		return nil, fmt.Errorf(errUnknownTableFmt, table)
	}

	// Table names come from the fixed list above; they cannot be bound as parameters.
	query, args, err := psql.Select("row_to_json(t)").From(table + " t").ToSql()
	if err != nil {
		return nil, errFailedBuildQuery(err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf(errFailedExportTableFmt, table, err)
	}
	defer rows.Close()

	out := make([]json.RawMessage, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf(errFailedExportTableFmt, table, err)
		}
		out = append(out, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errFailedExportTableFmt, table, err)
	}
	return out, nil
}
