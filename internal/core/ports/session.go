package ports

import (
	"context"
	"net/http"
	"time"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
)

// KeyValueStore is the durable storage a session persists its raw token
// and request counter into. Get returns domain.ErrKeyNotFound-free
// semantics: a missing key is ("", false, nil).
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// CredentialVerifier checks a username/password pair and, on success,
// returns the role set the session should carry. Bad credentials surface
// as domain.ErrInvalidCredentials.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) ([]string, error)
}

// Notifier receives user-visible session notices: warnings raised by
// xss/csrf incidents and the forced-logout notice on inactivity expiry.
type Notifier interface {
	Warn(message string)
	SessionEnded(reason string)
}

// ActivitySource delivers user activity signals (pointer, key, click,
// scroll in the original client; any authenticated request on the server).
// Callbacks registered with OnActivity fire once per signal.
type ActivitySource interface {
	OnActivity(fn func())
}

// Doer performs outbound HTTP requests for SecureFetch.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Clock abstracts time.Now so session timers are testable.
type Clock interface {
	Now() time.Time
}

// IncidentRecord is one incident attributed to a client session, as
// carried through the audit pipeline.
type IncidentRecord struct {
	ClientID string
	Incident domain.SecurityIncident
}

// AuditSink accepts incident records for asynchronous persistence. The
// session manager never blocks on it.
type AuditSink interface {
	Enqueue(rec IncidentRecord)
}
