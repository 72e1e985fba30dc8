package validation

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/ticevid/encoder/internal/config"
)

func writeTestContainer(t *testing.T, titleCount uint8, extraChunks int, remainderBytes int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.bin")

	header := make([]byte, config.HeaderSize)
	binary.LittleEndian.PutUint16(header[0:2], config.SchemaVersionMajor)
	header[2] = config.SchemaVersionMinor
	header[3] = config.SchemaVersionPatch
	header[4] = titleCount

	body := make([]byte, extraChunks*config.ChunkSize+remainderBytes)
	data := append(header, body...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing test container: %v", err)
	}
	return path
}

func TestValidateContainerAllPass(t *testing.T) {
	path := writeTestContainer(t, 2, 3, 0)
	result, err := ValidateContainer(path, 2)
	if err != nil {
		t.Fatalf("ValidateContainer: %v", err)
	}
	if !result.IsValid() {
		t.Fatalf("expected all checks to pass, got %+v", result.Steps)
	}
}

func TestValidateContainerWrongTitleCount(t *testing.T) {
	path := writeTestContainer(t, 2, 1, 0)
	result, err := ValidateContainer(path, 3)
	if err != nil {
		t.Fatalf("ValidateContainer: %v", err)
	}
	if result.IsValid() {
		t.Fatal("expected title count mismatch to fail validation")
	}
}

func TestValidateContainerMisalignedSize(t *testing.T) {
	path := writeTestContainer(t, 1, 1, 17)
	result, err := ValidateContainer(path, 1)
	if err != nil {
		t.Fatalf("ValidateContainer: %v", err)
	}
	if result.IsValid() {
		t.Fatal("expected misaligned file size to fail validation")
	}
}
