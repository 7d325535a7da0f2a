package processor

import (
	"os"
	"path/filepath"

	"promoreel/internal/ports"
)

type Cleanup struct {
	outputRoot   string
	cleanupLocal bool
	sp           ports.StorageProvider
}

func NewCleanup(outputRoot string, cleanupLocal bool, sp ports.StorageProvider) *Cleanup {
	return &Cleanup{
		outputRoot:   outputRoot,
		cleanupLocal: cleanupLocal,
		sp:           sp,
	}
}

// CleanupOrder borra los artefactos locales del pedido una vez subidos.
// Con localfs los renders locales SON la entrega, así que no se tocan.
func (c *Cleanup) CleanupOrder(orderID, narrationPath string, renders []string) {
	if !c.shouldCleanup() {
		return
	}

	_ = os.Remove(narrationPath)
	for _, r := range renders {
		_ = os.Remove(r)
	}

	// El directorio solo se va si quedó vacío.
	_ = os.Remove(filepath.Join(c.outputRoot, SanitizeFilename(orderID)))
}

func (c *Cleanup) shouldCleanup() bool {
	return c.cleanupLocal && c.sp != nil && c.sp.Provider() == "gdrive"
}
