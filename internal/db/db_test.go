package db

import (
	"path/filepath"
	"testing"
	"time"
)

func open(t *testing.T) (*DB, string) {
	t.Helper()

	file := filepath.Join(t.TempDir(), "data", "results.db")
	d, err := Open(Config{File: file, LockTimeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	return d, file
}

func TestSaveLookup(t *testing.T) {
	d, _ := open(t)
	defer d.Close()

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)

	if _, ok, err := d.Lookup("bwt", "ACGTGT", t0); err != nil || ok {
		t.Fatalf("lookup before save: ok=%v err=%v", ok, err)
	}

	if err := d.Save("bwt", "ACGTGT", "T$ATCGG", t0); err != nil {
		t.Fatal(err)
	}

	rec, ok, err := d.Lookup("bwt", "ACGTGT", t1)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("saved record not found")
	}
	if rec.Output != "T$ATCGG" || rec.Hits != 1 || !rec.Created.Equal(t0) || !rec.LastUsed.Equal(t1) {
		t.Fatalf("unexpected record %+v", rec)
	}

	rec, _, _ = d.Lookup("bwt", "ACGTGT", t1)
	if rec.Hits != 2 {
		t.Fatalf("hits = %d, want 2", rec.Hits)
	}

	if _, ok, _ := d.Lookup("inverse_bwt", "ACGTGT", t1); ok {
		t.Fatal("records must be separated by operation")
	}
}

func TestAll(t *testing.T) {
	d, _ := open(t)
	defer d.Close()

	now := time.Now()
	for in, out := range map[string]string{"A": "A$", "AA": "AA$", "ACGTGT": "T$ATCGG"} {
		if err := d.Save("bwt", in, out, now); err != nil {
			t.Fatal(err)
		}
	}

	seen := map[string]string{}
	for _, rec := range d.All() {
		seen[rec.Input] = rec.Output
	}
	if len(seen) != 3 || seen["ACGTGT"] != "T$ATCGG" {
		t.Fatalf("All returned %v", seen)
	}

	n := 0
	for range d.All() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("early break yielded %d records", n)
	}
}

func TestReopenReadOnly(t *testing.T) {
	d, file := open(t)
	if err := d.Save("inverse_bwt", "T$ATCGG", "ACGTGT", time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}

	ro, err := Open(Config{File: file, ReadOnly: true, LockTimeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	defer ro.Close()

	var got []Record
	for _, rec := range ro.All() {
		got = append(got, rec)
	}
	if len(got) != 1 || got[0].Output != "ACGTGT" || got[0].Op != "inverse_bwt" {
		t.Fatalf("read-only reopen returned %+v", got)
	}
}

func TestOpenRequiresFile(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic without file")
		}
	}()
	Open(Config{})
}
