package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/reoring/tasl"
	"github.com/reoring/tasl/codec"
	"github.com/reoring/tasl/literal"
)

func testSchema(datatype string) *tasl.Schema {
	return tasl.MustSchema(map[string]tasl.Type{
		"ex:Person": tasl.NewProduct(map[string]tasl.Type{
			"ex:name":  tasl.NewLiteral(datatype),
			"ex:knows": tasl.NewReference("ex:Person"),
		}),
	})
}

func testInstance() tasl.Instance {
	return tasl.Instance{"ex:Person": {
		tasl.ProductValue{tasl.ReferenceValue{Index: 0}, tasl.LiteralValue{Value: "ada"}},
	}}
}

func TestRepository_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	repo := New(mem, testSchema(literal.String), nil)

	id, err := repo.Save(ctx, testInstance())
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected uuid key, got %q", id)
	}
	got, err := repo.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !tasl.Equal(got, testInstance()) {
		t.Errorf("Load returned %#v", got)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := repo.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRepository_RecordLayout(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	s := testSchema(literal.String)
	repo := New(mem, s, nil)
	if err := repo.Put(ctx, "k", testInstance()); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	rec, err := mem.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	payload, err := codec.Encode(s, testInstance())
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if len(rec) != headerSize+len(payload) || string(rec[headerSize:]) != string(payload) {
		t.Fatalf("record % x does not frame payload % x", rec, payload)
	}
}

func TestRepository_SchemaMismatch(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	if err := New(mem, testSchema(literal.String), nil).Put(ctx, "k", testInstance()); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	_, err := New(mem, testSchema(literal.Integer), nil).Load(ctx, "k")
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestRepository_Corrupt(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	_ = mem.Put(ctx, "short", []byte{1, 2, 3})
	if _, err := New(mem, testSchema(literal.String), nil).Load(ctx, "short"); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestRepository_EncodeErrorKeepsIssues(t *testing.T) {
	repo := New(NewMemory(), testSchema(literal.String), nil)
	err := repo.Put(context.Background(), "k", tasl.Instance{"ex:Robot": {}})
	if !tasl.HasCode(err, tasl.CodeSchemaMismatch) {
		t.Fatalf("expected schema_mismatch issue, got %v", err)
	}
}

func TestRepository_CodecLimits(t *testing.T) {
	strict := New(NewMemory(), testSchema(literal.String), codec.New(codec.Options{MaxValues: 1}))
	two := tasl.Instance{"ex:Person": {testInstance()["ex:Person"][0], testInstance()["ex:Person"][0]}}
	if _, err := strict.Save(context.Background(), two); !tasl.HasCode(err, tasl.CodeTooBig) {
		t.Fatalf("expected too_big, got %v", err)
	}
}

func TestMemoryBackend_CopiesData(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	in := []byte("abc")
	_ = m.Put(ctx, "k", in)
	in[0] = 'X'
	out, _ := m.Get(ctx, "k")
	if string(out) != "abc" {
		t.Fatalf("stored data aliased caller slice: %q", out)
	}
	out[1] = 'Y'
	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("returned data aliased storage: %q", again)
	}
}

func TestMemoryBackend_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := New(NewMemory(), testSchema(literal.String), nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.Save(ctx, testInstance())
			if err != nil {
				t.Errorf("Save error: %v", err)
				return
			}
			if _, err := repo.Load(ctx, id); err != nil {
				t.Errorf("Load error: %v", err)
			}
		}()
	}
	wg.Wait()
	if n := repo.backend.(*MemoryBackend).Len(); n != 16 {
		t.Fatalf("expected 16 records, got %d", n)
	}
}
