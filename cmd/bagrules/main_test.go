package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleRules = `light red bags contain 1 bright white bag, 2 muted yellow bags.
dark orange bags contain 3 bright white bags, 4 muted yellow bags.
bright white bags contain 1 shiny gold bag.
muted yellow bags contain 2 shiny gold bags, 9 faded blue bags.
shiny gold bags contain 1 dark olive bag, 2 vibrant plum bags.
dark olive bags contain 3 faded blue bags, 4 dotted black bags.
vibrant plum bags contain 5 faded blue bags, 6 dotted black bags.
faded blue bags contain no other bags.
dotted black bags contain no other bags.
`

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "", "--version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "bagrules v"+VERSION+"\n", out)
}

func TestRun_PlainFromStdin(t *testing.T) {
	code, out, errOut := runCLI(t, exampleRules, "--plain", "--config", filepath.Join(t.TempDir(), "none.toml"), "-")
	require.Equal(t, 1, code, errOut)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "config file not found")

	code, out, errOut = runCLI(t, exampleRules, "--plain", "-")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "4\n32\n", out)
}

func TestRun_ListMatchAndTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.txt")
	require.NoError(t, os.WriteFile(path, []byte(exampleRules), 0644))

	code, out, errOut := runCLI(t, "", "--plain", "--input", path, "--match", "*white", "--trace", "light red")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "4\n32\nbright white\nlight red -> bright white -> shiny gold\n", out)
}

func TestRun_ConfigFileAndSummary(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.txt")
	require.NoError(t, os.WriteFile(rules, []byte(exampleRules), 0644))
	cfgPath := filepath.Join(dir, "bagrules.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[input]
paths = ["`+filepath.ToSlash(rules)+`"]

[query]
root = "muted yellow"
`), 0644))

	code, out, errOut := runCLI(t, "", "--config", cfgPath)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Part 1")
	assert.Contains(t, out, `"muted yellow"`)

	code, out, errOut = runCLI(t, "", "--config", cfgPath, "--plain", "--root", "shiny gold")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "4\n32\n", out)
}

func TestRun_ParseFailure(t *testing.T) {
	code, out, errOut := runCLI(t, "light red bags hold 1 bright white bag.\n", "--plain", "-")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "PARSE_ERROR")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, _ := runCLI(t, "", "--nope")
	assert.Equal(t, 2, code)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, splitList(" a, ,b c,"))
	assert.Nil(t, splitList(""))
}
