package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"

	"github.com/entalpic/siesta/internal/cmd/paths"
)

func TestExpand(t *testing.T) {
	t.Setenv("DOCS_ROOT", "/srv/project")
	assert.Equal(t, filepath.Clean("/srv/project/docs"), paths.Expand("$DOCS_ROOT/docs"))
	assert.Equal(t, "docs", paths.Expand("./docs"))
	assert.Equal(t, xdg.Home, paths.Expand("~"))
	assert.Equal(t, filepath.Join(xdg.Home, "docs"), paths.Expand("~/docs"))
}
