package ports_test

import (
	"testing"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/mocks"
	authmocks "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/mocks/auth"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.Backend = (*mocks.MockBackend)(nil)
	var _ ports.KeyValueStore = (*mocks.MockKeyValueStore)(nil)
	var _ ports.KeyValueStore = authmocks.FailingKVStore{}
	var _ ports.CodeGenerator = (*authmocks.SequenceCodeGenerator)(nil)
	var _ ports.CodeNotifier = (*authmocks.RecordingNotifier)(nil)
	var _ ports.TokenInspector = authmocks.StaticTokenInspector{}
}
