package cache

import (
	"testing"
	"time"
)

func TestKeyIsStable(t *testing.T) {
	a := Key("https://www.ptt.cc/bbs/Stock/index.html")
	b := Key("https://www.ptt.cc/bbs/Stock/index.html")
	if a != b {
		t.Error("same URL must produce the same key")
	}
	if a == Key("https://www.ptt.cc/bbs/Stock/index2.html") {
		t.Error("different URLs must produce different keys")
	}
}

func TestDiskRoundTrip(t *testing.T) {
	d := NewDisk(t.TempDir(), time.Minute)

	key := Key("https://example.com")
	if err := d.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok := d.Get(key)
	if !ok || string(got) != "payload" {
		t.Errorf("get = %q ok=%v, want payload", got, ok)
	}
}

func TestDiskExpiry(t *testing.T) {
	d := NewDisk(t.TempDir(), time.Minute)

	key := Key("https://example.com")
	if err := d.Set(key, []byte("payload"), -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := d.Get(key); ok {
		t.Error("expired entry must miss")
	}
}

func TestLayeredPromotesDiskHits(t *testing.T) {
	l := NewLayered(time.Minute, t.TempDir(), time.Minute)

	key := Key("https://example.com")
	// write through the disk layer only, then read through the stack
	if err := l.disk.Set(key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, ok := l.memory.Get(key); ok {
		t.Fatal("memory layer should start cold")
	}
	if v, ok := l.Get(key); !ok || string(v) != "payload" {
		t.Fatalf("layered get = %q ok=%v", v, ok)
	}
	if _, ok := l.memory.Get(key); !ok {
		t.Error("disk hit should be promoted into memory")
	}
}
