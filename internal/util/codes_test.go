package util

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAccessCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := NewAccessCode()
		assert.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.Less(t, n, 1000000)
	}
}

func TestNewUID(t *testing.T) {
	re := regexp.MustCompile(`^MC-\d{4}-\d{4}-\d{4}$`)
	for i := 0; i < 100; i++ {
		uid := NewUID()
		assert.Regexp(t, re, uid)
		assert.NoError(t, ValidateUID(uid))
	}
}

func TestValidateUID(t *testing.T) {
	tests := []struct {
		name    string
		uid     string
		wantErr error
	}{
		{name: "valid", uid: "MC-1234-5678-9012"},
		{name: "alphanumeric groups", uid: "MC-AB12-CD34-EF56"},
		{name: "groups not checked", uid: "MC-1-2-3"},
		{name: "missing prefix", uid: "ABC-123", wantErr: ErrUIDPrefix},
		{name: "lower case prefix", uid: "mc-1234-5678-9012", wantErr: ErrUIDPrefix},
		{name: "too few groups", uid: "MC-1234-5678", wantErr: ErrUIDFormat},
		{name: "too many groups", uid: "MC-1234-5678-9012-3456", wantErr: ErrUIDFormat},
		{name: "empty", uid: "", wantErr: ErrUIDPrefix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, ValidateUID(tt.uid))
		})
	}
}

func TestNewClassCode(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, re, NewClassCode())
	}
}
