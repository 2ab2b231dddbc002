package auth

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var revokedBucket = []byte("revoked")

// RevocationStore remembers logged-out session ids until their token
// would have expired anyway.
type RevocationStore struct {
	db *bolt.DB
}

func OpenRevocationStore(path string) (*RevocationStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open revocation store %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(revokedBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init revocation bucket")
	}
	return &RevocationStore{db: db}, nil
}

func (s *RevocationStore) Revoke(id string, until time.Time) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(until.Unix()))
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(revokedBucket).Put([]byte(id), buf)
	})
}

func (s *RevocationStore) IsRevoked(id string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(revokedBucket).Get([]byte(id)) != nil
		return nil
	})
	return found, err
}

// Prune drops entries that expired before now and returns how many.
func (s *RevocationStore) Prune(now time.Time) (int, error) {
	var removed int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(revokedBucket)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			if len(v) != 8 || int64(binary.BigEndian.Uint64(v)) < now.Unix() {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

func (s *RevocationStore) Close() error {
	return s.db.Close()
}
