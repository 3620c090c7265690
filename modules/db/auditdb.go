package db

import (
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"
)

type AuditEntry struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// AppendAudit writes one entry to the append-only action log.
func AppendAudit(entry AuditEntry) error {
	db, err := GetDB()
	if err != nil {
		return err
	}
	if err := ensureGateBuckets(db); err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte("audit"))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return b.Put(itob(int(seq)), data)
	})
}

// RecentAudit returns up to n newest entries, newest first.
func RecentAudit(n int) ([]AuditEntry, error) {
	db, err := GetDB()
	if err != nil {
		return nil, err
	}
	if err := ensureGateBuckets(db); err != nil {
		return nil, err
	}

	var entries []AuditEntry
	err = db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte("audit")).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			var e AuditEntry
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}
