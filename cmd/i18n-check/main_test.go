package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRefs(t *testing.T) {
	src := "var a = `<p>{{i18n \"msg.hello\"}}</p>`\n" +
		"title := config.I18n(\"settings.title\")\n" +
		"x := I18n(key)\n"
	refs := findRefs("x.go", src)
	require.Len(t, refs, 2)
	assert.Equal(t, KeyRef{Key: "msg.hello", File: "x.go", Line: 1}, refs[0])
	assert.Equal(t, KeyRef{Key: "settings.title", File: "x.go", Line: 2}, refs[1])
}

func TestCheckLocale(t *testing.T) {
	refs := []KeyRef{
		{Key: "msg.hello", File: "a.go", Line: 1},
		{Key: "msg.gone", File: "a.go", Line: 2},
		{Key: "msg.gone", File: "b.go", Line: 9},
	}
	strs := I18nStrings{"msg.hello": "Hello", "msg.stale": "Old", "tab.all": "All"}

	result := checkLocale("en", strs, refs)
	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Missing, 1, "each missing key is reported once")
	assert.Equal(t, "msg.gone", result.Missing[0].Key)
	assert.Equal(t, []string{"msg.stale"}, result.Unused)
}

func TestAnalyzeProject(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("internal/config/i18n/en.json", `{"btn.ok": "OK"}`)
	write("internal/config/i18n/de.json", `{}`)
	write("templates/page.go", "package templates\nvar p = `{{i18n \"btn.ok\"}}`\n")
	write("page_test.go", "package main\nvar _ = I18n(\"test.only\")\n")
	write("_examples/x/y.go", "package y\nvar _ = I18n(\"ignored.key\")\n")

	report, err := analyzeProject(root)
	require.NoError(t, err)
	require.Len(t, report.Refs, 1)
	require.Len(t, report.Locales, 2)
	assert.Equal(t, "de", report.Locales[0].Name)
	assert.Len(t, report.Locales[0].Missing, 1)
	assert.Equal(t, "en", report.Locales[1].Name)
	assert.Empty(t, report.Locales[1].Missing)
}
