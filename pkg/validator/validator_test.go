package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"reader@example.org", false},
		{"first.last+tag@library.co.uk", false},
		{"", true},
		{"no-at-sign", true},
		{"a@b", true},
		{strings.Repeat("a", 250) + "@example.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := Email(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("longenough"))
	assert.Error(t, Password("short"))
	assert.Error(t, Password(strings.Repeat("x", 73)))
}

func TestRequiredAndText(t *testing.T) {
	tests := []struct {
		name    string
		check   func() error
		wantErr string
	}{
		{"present", func() error { return Required("title", "Summer reading", MaxTitleLen) }, ""},
		{"blank", func() error { return Required("title", "   ", MaxTitleLen) }, "title is required"},
		{"too long", func() error { return Required("title", strings.Repeat("t", 256), MaxTitleLen) }, "title must not exceed 255 characters"},
		{"multiline body", func() error { return Text("content", "line one\nline two\ttabbed", MaxBodyLen) }, ""},
		{"control char", func() error { return Text("content", "bell\x07", MaxBodyLen) }, "content cannot contain control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestURL(t *testing.T) {
	assert.NoError(t, URL("url", ""))
	assert.NoError(t, URL("url", "https://cdn.example.org/a.png"))
	assert.Error(t, URL("url", "ftp://example.org/a.png"))
	assert.Error(t, URL("url", "/relative/path.png"))
	assert.Error(t, URL("url", "javascript:alert(1)"))
}

func TestTags(t *testing.T) {
	assert.NoError(t, Tags(nil))
	assert.NoError(t, Tags([]string{"history", "local"}))
	assert.Error(t, Tags([]string{" "}))
	assert.Error(t, Tags([]string{strings.Repeat("x", 51)}))

	many := make([]string, 21)
	for i := range many {
		many[i] = "t"
	}
	assert.Error(t, Tags(many))
}

func TestFileChecks(t *testing.T) {
	assert.NoError(t, FileName("cover.jpg"))
	assert.Error(t, FileName(""))
	assert.Error(t, FileName("../etc/passwd"))

	assert.NoError(t, FileSize(10, 100))
	assert.Error(t, FileSize(0, 100))
	assert.Error(t, FileSize(101, 100))

	assert.NoError(t, ContentType(""))
	assert.NoError(t, ContentType("image/png"))
	assert.Error(t, ContentType("not a type;;"))
}
