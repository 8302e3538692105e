package memstore

import (
	"testing"

	"github.com/cognicore/rhetoric/pkg/rhetoric/store"
	"github.com/cognicore/rhetoric/pkg/rhetoric/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}
