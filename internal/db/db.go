// Package db stores computed transform results in a BoltDB file.
package db

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketResults = []byte("results")
)

const defaultLockTimeout = 30 * time.Second

type DB struct {
	bolt *bbolt.DB
}

// Record is one stored result. Op names the operation that produced Output
// from Input.
type Record struct {
	Op       string    `json:"op"`
	Input    string    `json:"input"`
	Output   string    `json:"output"`
	Created  time.Time `json:"created"`
	LastUsed time.Time `json:"last_used"`
	Hits     int       `json:"hits"`
}

func Open(config Config) (*DB, error) {
	if config.File == "" {
		panic("db: file is required")
	}

	timeout := config.LockTimeout
	if timeout == 0 {
		timeout = defaultLockTimeout
	}

	if !config.ReadOnly {
		err := os.MkdirAll(filepath.Dir(config.File), 0755)
		if err != nil {
			return nil, fmt.Errorf("db: create db dir: %w", err)
		}
	}

	b, err := bbolt.Open(config.File, 0600, &bbolt.Options{
		Timeout:  timeout,
		ReadOnly: config.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("db: open bbolt db: %w", err)
	}

	if config.ReadOnly {
		return &DB{bolt: b}, nil
	}

	err = b.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{
			bucketResults,
		} {
			_, err := tx.CreateBucketIfNotExists(bucket)
			if err != nil {
				return fmt.Errorf("create bucket %q: %w", bucket, err)
			}
		}

		return nil
	})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("db: initialize buckets: %w", err)
	}

	return &DB{bolt: b}, nil
}

func (db *DB) Close() error {
	err := db.bolt.Close()
	if err != nil {
		return fmt.Errorf("db: close bbolt db: %w", err)
	}
	return nil
}

func recordKey(op, input string) []byte {
	sum := sha256.Sum256([]byte(input))
	return []byte(op + "/" + hex.EncodeToString(sum[:]))
}

func (db *DB) modify(op, input string, modify func(*Record, bool) (*Record, error)) error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketResults)
		if b == nil {
			return fmt.Errorf("db: results bucket not found")
		}

		k := recordKey(op, input)

		var rec *Record
		exists := false

		data := b.Get(k)
		if data == nil {
			rec = &Record{}
		} else {
			err := json.Unmarshal(data, &rec)
			if err != nil {
				return fmt.Errorf("db: unmarshal record %q: %w", k, err)
			}
			// Key collisions are not expected; never serve a result for
			// another input.
			if rec.Op != op || rec.Input != input {
				rec = &Record{}
			} else {
				exists = true
			}
		}

		var err error
		if rec, err = modify(rec, exists); err != nil {
			return fmt.Errorf("db: modify record %q: %w", k, err)
		}

		if rec == nil {
			if !exists {
				return nil
			}
			return b.Delete(k)
		}

		data, err = json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("db: marshal record %q: %w", k, err)
		}
		return b.Put(k, data)
	})
}

// Lookup returns the stored result for op applied to input and counts the hit.
func (db *DB) Lookup(op, input string, now time.Time) (Record, bool, error) {
	var found Record
	var ok bool
	err := db.modify(op, input, func(rec *Record, exists bool) (*Record, error) {
		if !exists {
			return nil, nil
		}

		rec.Hits++
		rec.LastUsed = now
		found, ok = *rec, true
		return rec, nil
	})
	if err != nil {
		return Record{}, false, err
	}
	return found, ok, nil
}

func (db *DB) Save(op, input, output string, now time.Time) error {
	return db.modify(op, input, func(rec *Record, exists bool) (*Record, error) {
		if exists {
			rec.Output = output
			rec.LastUsed = now
			return rec, nil
		}

		return &Record{
			Op:       op,
			Input:    input,
			Output:   output,
			Created:  now,
			LastUsed: now,
		}, nil
	})
}

var errStop = fmt.Errorf("stop iteration")

// All iterates over every stored record in key order. It panics if the
// database cannot be read.
func (db *DB) All() iter.Seq2[string, Record] {
	return func(yield func(string, Record) bool) {
		err := db.bolt.View(func(tx *bbolt.Tx) error {
			b := tx.Bucket(bucketResults)
			if b == nil {
				return nil
			}

			return b.ForEach(func(k, v []byte) error {
				var rec Record
				err := json.Unmarshal(v, &rec)
				if err != nil {
					return fmt.Errorf("db: unmarshal record %q: %w", k, err)
				}

				if !yield(string(k), rec) {
					return errStop
				}
				return nil
			})
		})

		if err != nil {
			if errors.Is(err, errStop) {
				return
			}
			panic(fmt.Errorf("db: get all records: %w", err))
		}
	}
}
