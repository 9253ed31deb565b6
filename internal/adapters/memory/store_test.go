package memory_test

import (
	"testing"

	"github.com/aretw0/envswitch/internal/adapters/memory"
	"github.com/aretw0/envswitch/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.New()
	ports.RunRecordStoreContract(t, store)
}
