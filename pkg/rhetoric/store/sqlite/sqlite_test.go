package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cognicore/rhetoric/pkg/rhetoric/store"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store/storetest"
)

func open(t *testing.T) store.Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "rhetoric.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return st
}

func TestStore(t *testing.T) {
	storetest.Run(t, open)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rhetoric.db")

	st, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := st.IncPair(ctx, "union", "liberty"); err != nil {
		t.Fatalf("IncPair: %v", err)
	}
	st.Close()

	st, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	if n, err := st.PairCount(ctx, "liberty", "union"); err != nil || n != 1 {
		t.Errorf("PairCount after reopen = %d, %v", n, err)
	}
}
