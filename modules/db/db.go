package db

import (
	"fmt"
	"sync"

	bolt "go.etcd.io/bbolt"
)

var (
	sharedDB     *bolt.DB
	sharedDBOnce sync.Once
	sharedDBPath = "gatekeeper.db"
)

// SetPath overrides the database location. Only effective before the first
// GetDB call.
func SetPath(path string) {
	if path != "" {
		sharedDBPath = path
	}
}

func GetDB() (*bolt.DB, error) {
	var err error
	sharedDBOnce.Do(func() {
		sharedDB, err = bolt.Open(sharedDBPath, 0600, nil)
	})
	if err != nil {
		return nil, err
	}
	if sharedDB == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return sharedDB, nil
}

func CloseDB() error {
	if sharedDB != nil {
		return sharedDB.Close()
	}
	return nil
}

func itob(v int) []byte {
	b := make([]byte, 8)
	for i := uint(0); i < 8; i++ {
		b[7-i] = byte(v >> (i * 8))
	}
	return b
}
