package registry

import (
	"testing"

	"github.com/zapdeck/zapdeck/internal/gateway"
)

func TestRegistry_UpsertInsertsAndOverwrites(t *testing.T) {
	r := New()

	r.Upsert("vendas", gateway.StatusInitializing)
	if got, ok := r.Get("vendas"); !ok || got.Status != gateway.StatusInitializing {
		t.Fatalf("Get(vendas) = %#v, %v; want INITIALIZING, true", got, ok)
	}

	r.Upsert("vendas", gateway.StatusReady)
	if got, _ := r.Get("vendas"); got.Status != gateway.StatusReady {
		t.Fatalf("status after overwrite = %q, want READY", got.Status)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (overwrite must not duplicate)", r.Len())
	}
}

func TestRegistry_UpsertUnknownIDIsInsertion(t *testing.T) {
	r := New()

	// A status_update for an id created out-of-band must create the entry.
	r.Upsert("suporte", gateway.StatusQRPending)
	if got, ok := r.Get("suporte"); !ok || got.Status != gateway.StatusQRPending {
		t.Fatalf("Get(suporte) = %#v, %v; want QR_PENDING, true", got, ok)
	}
}

func TestRegistry_ListSortedAndCloned(t *testing.T) {
	r := New()
	r.Upsert("b", gateway.StatusReady)
	r.Upsert("a", gateway.StatusOffline)
	r.Upsert("c", gateway.StatusError)

	list := r.List()
	if len(list) != 3 || list[0].ID != "a" || list[1].ID != "b" || list[2].ID != "c" {
		t.Fatalf("List = %#v, want ids a, b, c", list)
	}

	// Mutating the snapshot must not leak back into the registry.
	list[0].Status = gateway.StatusDestroying
	if got, _ := r.Get("a"); got.Status != gateway.StatusOffline {
		t.Fatalf("snapshot mutation leaked: Get(a).Status = %q", got.Status)
	}
}

func TestRegistry_RemoveIdempotent(t *testing.T) {
	r := New()
	r.Upsert("vendas", gateway.StatusReady)

	r.Remove("vendas")
	r.Remove("vendas")
	r.Remove("never-existed")

	if r.Len() != 0 {
		t.Fatalf("Len = %d after removes, want 0", r.Len())
	}
	if _, ok := r.Get("vendas"); ok {
		t.Fatal("Get(vendas) should miss after Remove")
	}
}
