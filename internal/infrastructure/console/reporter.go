package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Zhima-Mochi/paychain/internal/application/validation"
)

// Reporter prints one operator-facing line per diagnostic.
type Reporter struct {
	mu      sync.Mutex
	w       io.Writer
	catalog Catalog
}

func New(w io.Writer, catalog Catalog) *Reporter {
	if catalog == nil {
		catalog = Russian
	}
	return &Reporter{w: w, catalog: catalog}
}

func (r *Reporter) Report(_ context.Context, key validation.MessageKey, args ...any) {
	line := r.catalog.Format(key, args...)

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.w, line+"\n")
}

// Catalog maps message keys to fmt templates.
type Catalog map[validation.MessageKey]string

// Format renders key; unknown keys print the key followed by its arguments.
func (c Catalog) Format(key validation.MessageKey, args ...any) string {
	tmpl, ok := c[key]
	if !ok {
		if len(args) == 0 {
			return string(key)
		}
		parts := make([]string, 0, len(args)+1)
		parts = append(parts, string(key))
		for _, a := range args {
			parts = append(parts, fmt.Sprint(a))
		}
		return strings.Join(parts, " ")
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// CatalogFor picks the catalog for a language code, defaulting to Russian.
func CatalogFor(lang string) Catalog {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "en", "english":
		return English
	default:
		return Russian
	}
}
