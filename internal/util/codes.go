package util

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	UIDPrefix       = "MC-"
	uidGroups       = 4
	classCodeLength = 6
	classCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrUIDPrefix = errors.New(`UID must start with "MC-"`)
	ErrUIDFormat = errors.New("Invalid format. Use MC-XXXX-XXXX-XXXX")
)

// NewAccessCode returns a 6 digit numeric test access code.
func NewAccessCode() string {
	return fmt.Sprintf("%06d", 100000+rand.IntN(900000))
}

// NewUID returns a user id of the form MC-dddd-dddd-dddd.
func NewUID() string {
	group := func() int { return 1000 + rand.IntN(9000) }
	return fmt.Sprintf("%s%d-%d-%d", UIDPrefix, group(), group(), group())
}

// ValidateUID checks the prefix and the hyphen group count only; the groups
// themselves are not inspected.
func ValidateUID(uid string) error {
	if !strings.HasPrefix(uid, UIDPrefix) {
		return ErrUIDPrefix
	}
	if len(strings.Split(uid, "-")) != uidGroups {
		return ErrUIDFormat
	}
	return nil
}

// NewClassCode returns a random upper-case alphanumeric classroom code.
func NewClassCode() string {
	b := make([]byte, classCodeLength)
	for i := range b {
		b[i] = classCodeChars[rand.IntN(len(classCodeChars))]
	}
	return string(b)
}
