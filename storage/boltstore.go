package storage

import (
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Bucket names
var (
	manifestBucket = []byte("manifest")
	recordsBucket  = []byte("records")

	manifestKey = []byte("current")
)

// BoltStore persists a manifest and its flag records in a single bbolt
// file: a key-indexed byte-array store with the record index as the key.
// Words are stored big endian so files are comparable across hosts.
//
// The store has the same two-phase discipline as the rest of the core:
// Save is a build-phase operation, Load happens before readers attach.
type BoltStore struct {
	db  *bolt.DB
	log *zap.Logger
}

// NewBoltStore creates or opens the store file at path. log may be nil.
func NewBoltStore(path string, log *zap.Logger) (*BoltStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(manifestBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: initialize %s: %w", path, err)
	}
	return &BoltStore{db: db, log: log}, nil
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Save writes the manifest and every record of flags, replacing any
// previous contents.
func (s *BoltStore) Save(manifest Manifest, flags *FlagStore) error {
	codec, err := NewCBORCodec()
	if err != nil {
		return err
	}
	encoded, err := codec.MarshalCBOR(manifest)
	if err != nil {
		return fmt.Errorf("storage: encode manifest: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(recordsBucket); err != nil {
			return err
		}
		records, err := tx.CreateBucket(recordsBucket)
		if err != nil {
			return err
		}
		if err := tx.Bucket(manifestBucket).Put(manifestKey, encoded); err != nil {
			return err
		}
		var key [8]byte
		for i := 0; i < flags.Records(); i++ {
			binary.BigEndian.PutUint64(key[:], uint64(i))
			if err := records.Put(key[:], recordBytes(flags.recordWords(i))); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: save: %w", err)
	}
	s.log.Info("saved flag records",
		zap.Int("records", flags.Records()),
		zap.Int("wordsPerRecord", flags.WordsPerRecord()),
		zap.String("graphID", manifest.GraphID.String()),
	)
	return nil
}

// Load reads the stored manifest and flag records. It fails with
// ErrManifestMissing when nothing has been saved yet and ErrRecordCorrupt
// when a stored record disagrees with the manifest's record width.
func (s *BoltStore) Load() (Manifest, *FlagStore, error) {
	codec, err := NewCBORCodec()
	if err != nil {
		return Manifest{}, nil, err
	}
	var manifest Manifest
	var flags *FlagStore
	err = s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(manifestBucket).Get(manifestKey)
		if raw == nil {
			return ErrManifestMissing
		}
		if err := codec.UnmarshalCBOR(raw, &manifest); err != nil {
			return fmt.Errorf("storage: decode manifest: %w", err)
		}
		flags = NewFlagStore(manifest.WordsPerRecord)
		c := tx.Bucket(recordsBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if len(v) != manifest.WordsPerRecord*4 {
				return fmt.Errorf("%w: record %d has %d bytes, want %d",
					ErrRecordCorrupt, binary.BigEndian.Uint64(k), len(v), manifest.WordsPerRecord*4)
			}
			i := flags.AddRecord()
			copy(flags.recordWords(i), wordsFromBytes(v))
		}
		return nil
	})
	if err != nil {
		return Manifest{}, nil, err
	}
	s.log.Info("loaded flag records",
		zap.Int("records", flags.Records()),
		zap.String("graphID", manifest.GraphID.String()),
	)
	return manifest, flags, nil
}

func recordBytes(words []uint32) []byte {
	b := make([]byte, len(words)*4)
	for i, w := range words {
		binary.BigEndian.PutUint32(b[i*4:], w)
	}
	return b
}

func wordsFromBytes(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	return words
}
