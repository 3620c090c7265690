package db

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"
)

func ensureGateBuckets(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte("subscribers")); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte("admins")); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte("audit"))
		return err
	})
}

// SaveSubscribers overwrites the persisted subscriber set with the given ids.
func SaveSubscribers(ids []int64) error {
	return saveIDSet("subscribers", ids)
}

func LoadSubscribers() ([]int64, error) {
	return loadIDSet("subscribers")
}

func saveIDSet(bucket string, ids []int64) error {
	db, err := GetDB()
	if err != nil {
		return err
	}
	if err := ensureGateBuckets(db); err != nil {
		return err
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte("ids"), data)
	})
}

func loadIDSet(bucket string) ([]int64, error) {
	db, err := GetDB()
	if err != nil {
		return nil, err
	}
	if err := ensureGateBuckets(db); err != nil {
		return nil, err
	}

	var ids []int64
	err = db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucket)).Get([]byte("ids"))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &ids)
	})
	return ids, err
}
