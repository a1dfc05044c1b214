package db

import "testing"

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM chat_transcripts`).Scan(&n); err != nil {
		t.Fatalf("schema not applied: %v", err)
	}
	if n != 0 {
		t.Errorf("fresh database has %d rows", n)
	}
}
