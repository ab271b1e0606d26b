package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/contty/internal/config"
	"github.com/jorge-barreto/contty/internal/ux"
)

// FileName is the config file written by Init.
const FileName = "contty.yaml"

var configTemplate = `# Caddyfile rewritten by 'contty sync'. Only automatic blocks are changed.
caddyfile: ` + config.DefaultCaddyfile + `

# Contact address used for certificate issuance when a site sets none.
email: admin@example.com

sites:
  - hostname: app.example.com
    service: app
    port: 8080
`

// Init writes an example contty.yaml into targetDir.
func Init(w io.Writer, targetDir string) error {
	path := filepath.Join(targetDir, FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists in %s", FileName, targetDir)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}

	fmt.Fprintf(w, "\n%s%s✓ Created %s%s\n\n", ux.Bold, ux.Green, FileName, ux.Reset)
	fmt.Fprintf(w, "  Next steps:\n")
	fmt.Fprintf(w, "    1. Edit %s%s%s to list your sites\n", ux.Cyan, FileName, ux.Reset)
	fmt.Fprintf(w, "    2. Run %scontty sync --dry-run%s to preview the Caddyfile\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(w, "    3. Run %scontty sync%s to write it\n\n", ux.Cyan, ux.Reset)
	return nil
}
