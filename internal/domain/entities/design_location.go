package entities

import (
	"regexp"
	"strings"

	"qutlas/pkg/errs"
)

var bucketNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

// DesignLocation is a validated pointer to an uploaded design object.
// Build it with NewDesignLocation; bucket and key are never guessed from a
// path string.
type DesignLocation struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

func NewDesignLocation(bucket, key string) (DesignLocation, error) {
	bucket = strings.TrimSpace(bucket)
	key = strings.TrimSpace(key)
	if !bucketNamePattern.MatchString(bucket) || strings.Contains(bucket, "..") {
		return DesignLocation{}, errs.Markf(errs.ErrInvalidInput, "invalid design bucket %q", bucket)
	}
	if key == "" || strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") {
		return DesignLocation{}, errs.Markf(errs.ErrInvalidInput, "invalid design key %q", key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return DesignLocation{}, errs.Markf(errs.ErrInvalidInput, "invalid design key %q", key)
		}
	}
	return DesignLocation{Bucket: bucket, Key: key}, nil
}

func (l DesignLocation) String() string {
	return l.Bucket + "/" + l.Key
}
