package repl

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
)

var bucketHistory = []byte("history")

// History persists prompt input across sessions in a bolt bucket keyed
// by insertion sequence.
type History struct {
	db *bolt.DB
}

func OpenHistory(path string) (*History, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHistory)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &History{db: db}, nil
}

func (h *History) Append(line string) error {
	return h.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		var key [8]byte
		binary.BigEndian.PutUint64(key[:], seq)
		return b.Put(key[:], []byte(line))
	})
}

func (h *History) Lines() ([]string, error) {
	var list []string
	err := h.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketHistory).ForEach(func(_, v []byte) error {
			list = append(list, string(v))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (h *History) Close() error {
	return h.db.Close()
}
