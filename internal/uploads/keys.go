// Package uploads signs direct browser uploads and re-hosts remote images
// in the S3 bucket.
package uploads

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ObjectKey builds "<unix-millis>_<name>" where name is lowercased and
// stripped of everything outside [a-z0-9.].
func ObjectKey(fileName string, now time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToLower(fileName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		name = "file"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "_" + name
}

// PublicURL is the virtual-hosted address of key. A custom endpoint
// (MinIO, LocalStack) switches to path style.
func PublicURL(bucket, region, endpoint, key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if endpoint != "" {
		return strings.TrimRight(endpoint, "/") + "/" + bucket + "/" + escaped
	}
	return "https://" + bucket + ".s3." + region + ".amazonaws.com/" + escaped
}
