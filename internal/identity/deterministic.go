package identity

import (
	"encoding/base32"
	"strings"
	"time"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "coopsite:"

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity type to keep them from colliding.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SubmissionUUID identifies a contact submission. Resubmitting the same
// message from the same address at the same instant yields the same id.
func SubmissionUUID(email string, submittedAt time.Time, message string) uuid.UUID {
	return UUID(namespace + "submission:" +
		strings.ToLower(strings.TrimSpace(email)) + ":" +
		submittedAt.UTC().Format(time.RFC3339Nano) + ":" +
		strings.TrimSpace(message))
}

// PostUUID identifies a bundled fallback post in one language.
func PostUUID(slug, lang string) uuid.UUID {
	return UUID(namespace + "post:" + strings.ToLower(strings.TrimSpace(lang)) + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// DocumentID renders a CMS document id with a type prefix.
func DocumentID(prefix string, id uuid.UUID) string {
	return strings.TrimSpace(prefix) + "." + id.String()
}

var referenceEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// ReferenceCode is the short code shown to visitors after they submit the
// contact form, e.g. "CS-7KQ2M4XA".
func ReferenceCode(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return "CS-" + referenceEncoding.EncodeToString(id[:5])
}
