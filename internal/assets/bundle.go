// Package assets locates files of the prebuilt storefront bundle on disk.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const IndexFile = "index.html"

// Bundle resolves request paths to regular files under a root directory.
type Bundle struct {
	rootAbs string
}

func NewBundle(root string) (*Bundle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("static root cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve static root: %w", err)
	}

	return &Bundle{rootAbs: rootAbs}, nil
}

func (b *Bundle) RootAbs() string {
	return b.rootAbs
}

// Resolve returns the absolute path of the regular file urlPath names. Paths
// with traversal segments, control characters or that land on a directory are
// reported as missing.
func (b *Bundle) Resolve(urlPath string) (string, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(urlPath), `\`, "/")
	if hasControlCharacters(normalized) {
		return "", false
	}

	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", false
		}
	}

	cleanRel := filepath.Clean(strings.TrimPrefix(normalized, "/"))
	if cleanRel == "." {
		return "", false
	}

	resolved := filepath.Join(b.rootAbs, cleanRel)
	if !isWithinRoot(b.rootAbs, resolved) {
		return "", false
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return resolved, true
}

// Index returns the SPA entry point, if the bundle has one.
func (b *Bundle) Index() (string, bool) {
	return b.Resolve("/" + IndexFile)
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) {
			return true
		}
	}

	return false
}

func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if candidateAbs == rootAbs {
		return true
	}

	rootWithSeparator := rootAbs + string(filepath.Separator)
	return strings.HasPrefix(candidateAbs, rootWithSeparator)
}
