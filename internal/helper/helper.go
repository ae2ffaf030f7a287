package helper

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Slug transliterates s to lowercase ascii words joined with '-'.
func Slug(s string) string {
	return slug.Make(s)
}

// ResumeKey builds the storage key for a resume from the attendee name and
// the submission time, keeping the original extension.
func ResumeKey(firstName, lastName, filename string, at time.Time) string {
	name := Slug(firstName + " " + lastName)
	if name == "" {
		name = "resume"
	}
	key := fmt.Sprintf("%s-%d", name, at.UnixMilli())

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" && Slug(ext) != "" {
		key += "." + Slug(ext)
	}
	return key
}
