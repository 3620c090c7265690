package modules

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"main/modules/db"
)

// LogUserAction appends one entry to the persistent action log and fans it
// out to live audit listeners. Write failures never interrupt the handler
// that triggered them.
func LogUserAction(userID int64, action string) {
	entry := db.AuditEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	if err := db.AppendAudit(entry); err != nil {
		logWarn("could not append audit entry: " + err.Error())
	}
	auditFeed.publish(entry)
}

type feed struct {
	mu      sync.Mutex
	clients map[chan db.AuditEntry]bool
}

var auditFeed = &feed{clients: make(map[chan db.AuditEntry]bool)}

func (f *feed) publish(entry db.AuditEntry) {
	f.mu.Lock()
	for client := range f.clients {
		select {
		case client <- entry:
		default:
			// slow consumer, cut it loose
			delete(f.clients, client)
			close(client)
		}
	}
	f.mu.Unlock()
}

// SubscribeAudit registers a live listener for new audit entries.
func SubscribeAudit() chan db.AuditEntry {
	ch := make(chan db.AuditEntry, 16)
	auditFeed.mu.Lock()
	auditFeed.clients[ch] = true
	auditFeed.mu.Unlock()
	return ch
}

func UnsubscribeAudit(ch chan db.AuditEntry) {
	auditFeed.mu.Lock()
	if auditFeed.clients[ch] {
		delete(auditFeed.clients, ch)
		close(ch)
	}
	auditFeed.mu.Unlock()
}
