package validator

import (
	"errors"
	"fmt"
	"mime"
	"net/url"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 72
	maxFileNameLen    = 255
	maxContentTypeLen = 255
	maxTagLen         = 50
	maxTags           = 20
	asciiControlStart = 32
	asciiDelete       = 127

	MaxTitleLen   = 255
	MaxSubjectLen = 255
	MaxBodyLen    = 20000

	errEmailEmptyFmt           = "email cannot be empty"
	errEmailLengthFmt          = "email must be between %d and %d characters"
	errEmailInvalidFmt         = "invalid email format"
	errPasswordMinLengthFmt    = "password must be at least %d characters"
	errPasswordMaxLengthFmt    = "password must not exceed %d characters"
	errFieldRequiredFmt        = "%s is required"
	errFieldMaxLengthFmt       = "%s must not exceed %d characters"
	errFieldControlCharsFmt    = "%s cannot contain control characters"
	errURLInvalidFmt           = "%s must be an absolute http(s) URL"
	errTagsTooManyFmt          = "at most %d tags are allowed"
	errTagInvalidFmt           = "tag %q is invalid"
	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNamePathSepFmt      = "file name cannot contain path separators"
	errContentTypeMaxLengthFmt = "content type must not exceed %d characters"
	errContentTypeInvalidFmt   = "invalid content type"
	errFileSizeEmptyFmt        = "file is empty"
	errFileSizeMaxFmt          = "file size exceeds maximum of %d bytes"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func Email(email string) error {
	if email == "" {
		return errors.New(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return errors.New(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

// Required checks a mandatory single-line field such as a title or name.
func Required(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf(errFieldRequiredFmt, field)
	}
	return Text(field, value, maxLen)
}

// Text checks an optional field. Newlines and tabs are allowed.
func Text(field, value string, maxLen int) error {
	if len(value) > maxLen {
		return fmt.Errorf(errFieldMaxLengthFmt, field, maxLen)
	}

	for _, char := range value {
		if char == '\n' || char == '\r' || char == '\t' {
			continue
		}
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errFieldControlCharsFmt, field)
		}
	}

	return nil
}

// URL accepts an empty value or an absolute http(s) URL.
func URL(field, value string) error {
	if value == "" {
		return nil
	}

	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf(errURLInvalidFmt, field)
	}

	return nil
}

func Tags(tags []string) error {
	if len(tags) > maxTags {
		return fmt.Errorf(errTagsTooManyFmt, maxTags)
	}

	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" || len(trimmed) > maxTagLen {
			return fmt.Errorf(errTagInvalidFmt, tag)
		}
	}

	return nil
}

func FileName(name string) error {
	if name == "" {
		return errors.New(errFileNameEmptyFmt)
	}

	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}

	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return errors.New(errFileNamePathSepFmt)
	}

	return nil
}

func FileSize(size, maxBytes int64) error {
	if size <= 0 {
		return errors.New(errFileSizeEmptyFmt)
	}

	if size > maxBytes {
		return fmt.Errorf(errFileSizeMaxFmt, maxBytes)
	}

	return nil
}

func ContentType(contentType string) error {
	if contentType == "" {
		return nil
	}

	if len(contentType) > maxContentTypeLen {
		return fmt.Errorf(errContentTypeMaxLengthFmt, maxContentTypeLen)
	}

	if _, _, err := mime.ParseMediaType(contentType); err != nil {
		return errors.New(errContentTypeInvalidFmt)
	}

	return nil
}
