package persist

import (
	"encoding/json"
	"errors"
	"testing"
)

type stubProvider struct {
	docs    map[string]json.RawMessage
	loadErr error
	saveErr error
	saves   int
}

func newStubProvider() *stubProvider {
	return &stubProvider{docs: map[string]json.RawMessage{}}
}

func (s *stubProvider) Load(key string) (json.RawMessage, bool, error) {
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	doc, ok := s.docs[key]
	return doc, ok, nil
}

func (s *stubProvider) Save(key string, document any) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	payload, err := json.Marshal(document)
	if err != nil {
		return err
	}
	s.docs[key] = payload
	return nil
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := newStubProvider()
	local := newStubProvider()
	primary.docs["k"] = json.RawMessage(`{"from":"primary"}`)
	local.docs["k"] = json.RawMessage(`{"from":"local"}`)

	f := NewFallback(primary, local)
	doc, ok, err := f.Load("k")
	if err != nil || !ok {
		t.Fatalf("Load failed: ok=%v err=%v", ok, err)
	}
	if string(doc) != `{"from":"primary"}` {
		t.Fatalf("expected primary document, got %s", doc)
	}
}

func TestFallbackLoadFallsBackOnError(t *testing.T) {
	primary := newStubProvider()
	primary.loadErr = errors.New("network down")
	local := newStubProvider()
	local.docs["k"] = json.RawMessage(`{"from":"local"}`)

	f := NewFallback(primary, local)
	doc, ok, err := f.Load("k")
	if err != nil {
		t.Fatalf("fallback must swallow primary error, got %v", err)
	}
	if !ok || string(doc) != `{"from":"local"}` {
		t.Fatalf("expected local document, got ok=%v doc=%s", ok, doc)
	}
}

func TestFallbackSaveFallsBackOnError(t *testing.T) {
	primary := newStubProvider()
	primary.saveErr = errors.New("network down")
	local := newStubProvider()

	f := NewFallback(primary, local)
	if err := f.Save("k", map[string]string{"a": "b"}); err != nil {
		t.Fatalf("fallback save must succeed via local, got %v", err)
	}

	if _, ok := local.docs["k"]; !ok {
		t.Fatal("expected document persisted locally")
	}
}

func TestFallbackSaveSkipsLocalWhenPrimarySucceeds(t *testing.T) {
	primary := newStubProvider()
	local := newStubProvider()

	f := NewFallback(primary, local)
	if err := f.Save("k", map[string]string{"a": "b"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if local.saves != 0 {
		t.Fatal("local must not be written when primary succeeds")
	}
}
