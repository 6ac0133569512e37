package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	apperrors "library-cms/pkg/errors"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupFixture(source *fakeBackupSource, writer *fakeObjectWriter) *BackupService {
	clk := clock.NewMock()
	clk.Set(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC))
	return NewBackupService(source, writer, testPolicy(), testOptions(clk))
}

func TestBackupRun(t *testing.T) {
	source := &fakeBackupSource{tables: map[string][]json.RawMessage{
		"libraries": {json.RawMessage(`{"id":"a"}`), json.RawMessage(`{"id":"b"}`)},
		"stories":   {json.RawMessage(`{"id":"s"}`)},
		"events":    nil,
	}}
	writer := &fakeObjectWriter{}
	svc := newBackupFixture(source, writer)

	manifest, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backups/20260203T040506Z.json", manifest.Key)
	assert.Equal(t, "https://cdn.test/backups/20260203T040506Z.json", manifest.URL)
	assert.Equal(t, map[string]int{"libraries": 2, "stories": 1, "events": 0}, manifest.Tables)
	assert.Equal(t, len(writer.data), manifest.SizeBytes)
	assert.Equal(t, "application/json", writer.contentType)

	var doc struct {
		CreatedAt time.Time                    `json:"createdAt"`
		Tables    map[string][]json.RawMessage `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(writer.data, &doc))
	assert.Len(t, doc.Tables["libraries"], 2)
	assert.NotNil(t, doc.Tables["events"])
}

func TestBackupFailures(t *testing.T) {
	t.Run("export", func(t *testing.T) {
		source := &fakeBackupSource{tables: map[string][]json.RawMessage{"stories": nil}, err: errStorage}
		writer := &fakeObjectWriter{}
		_, err := newBackupFixture(source, writer).Run(context.Background())
		require.ErrorIs(t, err, apperrors.ErrUpstream)
		assert.Equal(t, "Failed to export backup", apperrors.Message(err))
		assert.Empty(t, writer.key)
	})

	t.Run("upload", func(t *testing.T) {
		source := &fakeBackupSource{tables: map[string][]json.RawMessage{"stories": nil}}
		_, err := newBackupFixture(source, &fakeObjectWriter{err: errStorage}).Run(context.Background())
		require.ErrorIs(t, err, apperrors.ErrUpstream)
		assert.Equal(t, "Failed to upload backup", apperrors.Message(err))
	})
}

func TestBackupCreateRequiresSuperAdmin(t *testing.T) {
	source := &fakeBackupSource{tables: map[string][]json.RawMessage{}}
	writer := &fakeObjectWriter{}
	svc := newBackupFixture(source, writer)

	_, err := svc.Create(context.Background(), libraryAdmin(libA))
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Empty(t, writer.key)

	_, err = svc.Create(context.Background(), superAdmin())
	require.NoError(t, err)
	assert.NotEmpty(t, writer.key)
}
