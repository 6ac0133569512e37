package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"library-cms/internal/domain/asset"
	apperrors "library-cms/pkg/errors"
	"library-cms/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON          = "application/json"
	contentTypeMultipart     = "multipart/form-data"
	maxStrictBodyBytes int64 = 1 << 20
	maxListLimit             = 100
)

func bindStrictJSON(c echo.Context, dst any) error {
	if !strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}
	return decodeStrict(io.LimitReader(c.Request().Body, maxStrictBodyBytes), dst)
}

func decodeStrict(r io.Reader, dst any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return apperrors.Validation(msgInvalidRequestBody)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return apperrors.Validation(msgInvalidRequestBody)
	}

	return nil
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeMultipart)
}

// bindContent decodes a create or update payload. JSON bodies decode directly;
// multipart bodies carry the same JSON document in the "data" field next to
// their file parts.
func bindContent(c echo.Context, dst any) error {
	if !isMultipart(c) {
		return bindStrictJSON(c, dst)
	}
	data := c.FormValue(formFieldData)
	if data == "" {
		return nil
	}
	return decodeStrict(bytes.NewReader([]byte(data)), dst)
}

// FileReader loads multipart file parts into memory, bounded by maxBytes.
type FileReader struct {
	maxBytes int64
}

func NewFileReader(maxBytes int64) *FileReader {
	return &FileReader{maxBytes: maxBytes}
}

// Read returns nil when the request is not multipart or has no part named field.
func (r *FileReader) Read(c echo.Context, field string) (*asset.File, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperrors.Validation(msgInvalidUpload)
	}
	if header.Size > r.maxBytes {
		return nil, apperrors.Validation(msgFileTooLarge)
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperrors.Validation(msgInvalidUpload)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, r.maxBytes+1))
	if err != nil {
		return nil, apperrors.Validation(msgInvalidUpload)
	}

	file := &asset.File{
		Name:        header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Data:        data,
	}
	if err := validator.FileName(file.Name); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := validator.FileSize(file.Size(), r.maxBytes); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := validator.ContentType(file.ContentType); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return file, nil
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return uuid.Nil, apperrors.Validation(msgInvalidID)
	}
	return id, nil
}

// queryUUID returns nil when the parameter is absent.
func queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.Validation(msgInvalidLibraryID)
	}
	return &id, nil
}

func queryBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.Validation(msgInvalidQuery)
	}
	return &v, nil
}

// parseTags accepts repeated and comma-separated values.
func parseTags(c echo.Context) []string {
	var tags []string
	for _, raw := range c.QueryParams()[queryTags] {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

type pageParams struct {
	Limit  int
	Offset int
}

func parsePage(c echo.Context, defaultLimit int) (pageParams, error) {
	p := pageParams{Limit: defaultLimit}
	if raw := c.QueryParam(queryLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, apperrors.Validation(msgInvalidQuery)
		}
		p.Limit = min(n, maxListLimit)
	}
	if raw := c.QueryParam(queryOffset); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return p, apperrors.Validation(msgInvalidQuery)
		}
		p.Offset = n
	}
	return p, nil
}
