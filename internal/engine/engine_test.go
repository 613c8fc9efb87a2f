package engine

import (
	"testing"
	"time"

	"github.com/JosuaKrause/redipy/rerr"
)

func TestStringSetGet(t *testing.T) {
	e := New()
	if _, ok, _ := e.Get("missing"); ok {
		t.Fatalf("expected missing key to be absent")
	}
	ok, _, _, err := e.Set("k", "v", SetFlags{})
	if err != nil || !ok {
		t.Fatalf("Set failed: ok=%v err=%v", ok, err)
	}
	v, ok, err := e.Get("k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Get returned v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestSetNXFailsWhenPresent(t *testing.T) {
	e := New()
	if _, err := e.Incr("k", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ok, _, _, err := e.Set("k", "new", SetFlags{NX: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("NX set should not overwrite an existing key")
	}
	v, _, _ := e.Get("k")
	if v != "0" {
		t.Fatalf("value should be unchanged, got %q", v)
	}
}

func TestTypeMismatch(t *testing.T) {
	e := New()
	if _, err := e.LPush("k", []string{"a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, err := e.Get("k")
	if kind, ok := rerr.KindOf(err); !ok || kind != rerr.KindTypeMismatch {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestEmptyContainersAreDeleted(t *testing.T) {
	e := New()
	if _, err := e.LPush("l", []string{"a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.LPop("l", 1); err != nil {
		t.Fatal(err)
	}
	if typ := e.Type("l"); typ != TypeNone {
		t.Fatalf("expected key to vanish once its list is empty, got type %v", typ)
	}
	if n := e.Exists([]string{"l"}); n != 0 {
		t.Fatalf("expected Exists to report 0, got %d", n)
	}
}

func TestLPopOnEmptyReturnsNotOK(t *testing.T) {
	e := New()
	if _, ok, err := e.LPopOne("nokey"); err != nil || ok {
		t.Fatalf("expected ok=false err=nil, got ok=%v err=%v", ok, err)
	}
}

func TestExpireDeletesImmediatelyOnNonPositiveTTL(t *testing.T) {
	e := New()
	e.MSet(map[string]string{"k": "v"})
	if !e.Expire("k", 0) {
		t.Fatalf("Expire should report success even though it deletes the key")
	}
	if e.Type("k") != TypeNone {
		t.Fatalf("key should be gone after a non-positive TTL")
	}
}

func TestTTLMonotonicity(t *testing.T) {
	e := New()
	e.MSet(map[string]string{"k": "v"})
	if ttl := e.TTL("k"); ttl != -1 {
		t.Fatalf("expected -1 for a key with no expiry, got %d", ttl)
	}
	if ttl := e.TTL("absent"); ttl != -2 {
		t.Fatalf("expected -2 for an absent key, got %d", ttl)
	}
	e.Expire("k", 10*time.Second)
	first := e.PTTL("k")
	time.Sleep(5 * time.Millisecond)
	second := e.PTTL("k")
	if second > first {
		t.Fatalf("PTTL should never increase between calls: %d then %d", first, second)
	}
}

func TestListRangeAndIndex(t *testing.T) {
	e := New()
	if _, err := e.RPush("l", []string{"a", "b", "c", "d"}); err != nil {
		t.Fatal(err)
	}
	got, err := e.LRange("l", 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("LRange = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LRange = %v, want %v", got, want)
		}
	}
	v, ok, err := e.LIndex("l", -1)
	if err != nil || !ok || v != "d" {
		t.Fatalf("LIndex(-1) = %q, %v, want d", v, ok)
	}
}

func TestHashGetAllIndependentCopy(t *testing.T) {
	e := New()
	if _, err := e.HSet("h", map[string]string{"f": "1"}); err != nil {
		t.Fatal(err)
	}
	snap, err := e.HGetAll("h")
	if err != nil {
		t.Fatal(err)
	}
	snap["f"] = "mutated"
	v, _, err := e.HGet("h", "f")
	if err != nil || v != "1" {
		t.Fatalf("HGetAll's map should be a copy; HGet now returns %q", v)
	}
}

func TestSetAlgebra(t *testing.T) {
	e := New()
	if _, err := e.SAdd("a", []string{"x", "y", "z"}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.SAdd("b", []string{"y", "z", "w"}); err != nil {
		t.Fatal(err)
	}
	diff, err := e.SDiff([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(diff) != 1 || diff[0] != "x" {
		t.Fatalf("SDiff(a,b) = %v, want [x]", diff)
	}
	inter, err := e.SInter([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(inter) != 2 || inter[0] != "y" || inter[1] != "z" {
		t.Fatalf("SInter(a,b) = %v, want [y z]", inter)
	}
	union, err := e.SUnion([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(union) != 4 {
		t.Fatalf("SUnion(a,b) = %v, want 4 members", union)
	}
}

func TestZAddFlagExclusivity(t *testing.T) {
	f := ZAddFlags{NX: true, XX: true}
	if err := f.Validate(); err == nil {
		t.Fatalf("expected NX+XX to be rejected")
	}
	f = ZAddFlags{GT: true, LT: true}
	if err := f.Validate(); err == nil {
		t.Fatalf("expected GT+LT to be rejected")
	}
	f = ZAddFlags{NX: true, GT: true}
	if err := f.Validate(); err == nil {
		t.Fatalf("expected NX+GT to be rejected")
	}
}

func TestZAddTieBreaksLexicographically(t *testing.T) {
	e := New()
	if _, err := e.ZAdd("z", map[string]float64{"b": 1, "a": 1, "c": 1}, ZAddFlags{}); err != nil {
		t.Fatal(err)
	}
	members, err := e.ZRange("z", 0, -1, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	for i, m := range members {
		if m.member != want[i] {
			t.Fatalf("ZRange order = %v, want ties broken lexicographically (%v)", members, want)
		}
	}
}

func TestZAddNXDoesNotOverwrite(t *testing.T) {
	e := New()
	if _, err := e.ZAdd("z", map[string]float64{"a": 1}, ZAddFlags{}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.ZAdd("z", map[string]float64{"a": 99}, ZAddFlags{NX: true}); err != nil {
		t.Fatal(err)
	}
	score, ok, err := e.ZScore("z", "a")
	if err != nil || !ok || score != 1 {
		t.Fatalf("NX re-add should not change score, got %v ok=%v", score, ok)
	}
}

func TestZPopMinOrdering(t *testing.T) {
	e := New()
	if _, err := e.ZAdd("z", map[string]float64{"a": 3, "b": 1, "c": 2}, ZAddFlags{}); err != nil {
		t.Fatal(err)
	}
	popped, err := e.ZPopMin("z", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(popped) != 2 || popped[0].member != "b" || popped[1].member != "c" {
		t.Fatalf("ZPopMin(2) = %v, want [b c]", popped)
	}
}

func TestScanCoversAllKeysAcrossCursors(t *testing.T) {
	e := New()
	for _, k := range []string{"k1", "k2", "k3", "other"} {
		e.MSet(map[string]string{k: "v"})
	}
	seen := map[string]bool{}
	cursor := int64(0)
	for {
		next, keys := e.Scan(cursor, "k*", 2, TypeNone)
		for _, k := range keys {
			seen[k] = true
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	if len(seen) != 3 || seen["other"] {
		t.Fatalf("Scan with pattern k* = %v, want exactly k1,k2,k3", seen)
	}
}

func TestRenamePreservesTTL(t *testing.T) {
	e := New()
	e.MSet(map[string]string{"old": "v"})
	e.Expire("old", time.Minute)
	if !e.Rename("old", "new") {
		t.Fatalf("Rename should succeed")
	}
	if e.Type("old") != TypeNone {
		t.Fatalf("old key should no longer exist")
	}
	v, ok, err := e.Get("new")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Get(new) = %q, %v, want v, true", v, ok)
	}
	if ttl := e.TTL("new"); ttl <= 0 {
		t.Fatalf("renamed key should carry its TTL over, got %d", ttl)
	}
}

func TestFlushAllRemovesEverything(t *testing.T) {
	e := New()
	e.MSet(map[string]string{"a": "1", "b": "2"})
	if _, err := e.LPush("l", []string{"x"}); err != nil {
		t.Fatal(err)
	}
	e.FlushAll()
	if n := e.DBSize(); n != 0 {
		t.Fatalf("DBSize after FlushAll = %d, want 0", n)
	}
}
