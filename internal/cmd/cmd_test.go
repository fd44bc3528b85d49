package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	rnafold "github.com/wagiedev/rnafold-go"
	"github.com/wagiedev/rnafold-go/internal/subprocess/subprocesstest"
)

const foldOutput = "CGCAGGGAUACCCGCG\n((((....))))\n( -4.20)\n"

type result struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, launcher *subprocesstest.Launcher, stdin string, args ...string) result {
	t.Helper()

	// Keep a developer's own config out of the tests.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd(rnafold.WithLauncher(launcher))

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))

	code := run(root, args)

	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestFold_Args(t *testing.T) {
	launcher := &subprocesstest.Launcher{Script: subprocesstest.Script{Stdout: foldOutput}}

	res := execute(t, launcher, "", "fold", "cgcagggauacccgcg")

	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "CGCAGGGAUACCCGCG\n((((....)))) ( -4.20)\n", res.stdout)
}

func TestFold_StdinLinesJSON(t *testing.T) {
	launcher := &subprocesstest.Launcher{Script: subprocesstest.Script{Stdout: foldOutput}}

	res := execute(t, launcher, "AUGC\n\nGGGG\n", "fold", "--format", "json")
	require.Equal(t, 0, res.code, res.stderr)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 2)

	var row foldRow
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &row))
	require.Equal(t, "GGGG", row.Sequence)
	require.Equal(t, "((((....))))", row.Structure)
	require.NotNil(t, row.Energy)
	require.InDelta(t, -4.20, *row.Energy, 1e-9)
}

func TestFold_FastaInput(t *testing.T) {
	launcher := &subprocesstest.Launcher{Script: subprocesstest.Script{Stdout: foldOutput}}

	in := ">first hairpin\nCGCAGG\nGAUACCCGCG\n>second\nAUGC\n"

	res := execute(t, launcher, in, "fold", "--input", "fasta")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, ">first hairpin\nCGCAGGGAUACCCGCG\n")
	require.Contains(t, res.stdout, ">second\nAUGC\n")

	inputs := make([]string, 0, 2)
	for _, p := range launcher.Processes() {
		inputs = append(inputs, p.Input())
	}

	require.ElementsMatch(t, []string{"CGCAGGGAUACCCGCG\n@\n", "AUGC\n@\n"}, inputs)
}

func TestFold_JSONLInvalidRecords(t *testing.T) {
	launcher := &subprocesstest.Launcher{Script: subprocesstest.Script{Stdout: foldOutput}}

	in := `{"id":"ok","sequence":"augc"}
{"id":"missing"}
{"id":"null","sequence":null}
{"id":"number","sequence":42}
{"id":"bad","sequence":"AUGC; rm -rf /"}
`

	res := execute(t, launcher, in, "fold", "--input", "jsonl", "--format", "json")
	require.Equal(t, 1, res.code)
	require.Len(t, launcher.Processes(), 1)

	rows := map[string]foldRow{}

	for line := range strings.SplitSeq(strings.TrimSpace(res.stdout), "\n") {
		var row foldRow
		require.NoError(t, json.Unmarshal([]byte(line), &row))
		rows[row.ID] = row
	}

	require.Empty(t, rows["ok"].Error)
	require.Equal(t, "AUGC", rows["ok"].Sequence)

	for _, id := range []string{"missing", "null", "number", "bad"} {
		require.Equal(t, "InvalidSequence", rows[id].ErrorKind, id)
	}
}

func TestFold_ProcessErrorExitCode(t *testing.T) {
	launcher := &subprocesstest.Launcher{Script: subprocesstest.Script{Stderr: "Error message", ExitCode: 1}}

	res := execute(t, launcher, "", "fold", "AUGC")

	require.Equal(t, 1, res.code)
	require.Empty(t, res.stdout)
	require.Contains(t, res.stderr, "rnafold: AUGC:")
	require.Contains(t, res.stderr, "Error message")
}

func TestFold_UnknownFormat(t *testing.T) {
	res := execute(t, &subprocesstest.Launcher{}, "", "fold", "--format", "xml", "AUGC")

	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, `unknown format "xml"`)
}

func TestFold_ConfigFile(t *testing.T) {
	launcher := &subprocesstest.Launcher{Script: subprocesstest.Script{Stdout: foldOutput}}

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = \"json\"\njobs = 2\n"), 0o644))

	res := execute(t, launcher, "", "--config", path, "fold", "AUGC")
	require.Equal(t, 0, res.code, res.stderr)
	require.True(t, json.Valid([]byte(strings.TrimSpace(res.stdout))))

	// Flags override the config file.
	res = execute(t, launcher, "", "--config", path, "fold", "--format", "text", "AUGC")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "AUGC\n((((....)))) ( -4.20)\n", res.stdout)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, &configFile{}, cfg)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("format = \"xml\"\n"), 0o644))

	_, err = loadConfig(bad)
	require.ErrorContains(t, err, `unknown format "xml"`)

	broken := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("jobs = \n"), 0o644))

	_, err = loadConfig(broken)
	require.ErrorContains(t, err, "parsing config")
}

func TestReadFasta_DataBeforeHeader(t *testing.T) {
	_, err := readFasta(strings.NewReader("AUGC\n>x\nAUGC\n"))
	require.Error(t, err)
}

func TestReadJSONL_Malformed(t *testing.T) {
	_, err := readJSONL(strings.NewReader("{\"id\":\n"))
	require.ErrorContains(t, err, "jsonl line 1")
}

// fakeRNAfoldOnPath puts an RNAfold script that prints version on PATH.
func fakeRNAfoldOnPath(t *testing.T, version string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("Test requires a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "RNAfold")
	script := "#!/bin/sh\necho \"RNAfold " + version + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	t.Setenv("PATH", dir)
	t.Setenv("RNAFOLD_SKIP_VERSION_CHECK", "")

	return path
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{
			name:    "supported",
			version: "2.6.4",
			wantOut: "version: 2.6.4 (minimum 2.4.0)\nok\n",
		},
		{
			name:     "too old",
			version:  "2.1.9",
			wantCode: 1,
			wantOut:  "version: 2.1.9 (minimum 2.4.0)\n",
			wantErr:  "older than the supported minimum 2.4.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := fakeRNAfoldOnPath(t, tt.version)

			res := execute(t, &subprocesstest.Launcher{}, "", "check")

			require.Equal(t, tt.wantCode, res.code, res.stderr)
			require.Contains(t, res.stdout, "RNAfold: "+path+"\n")
			require.Contains(t, res.stdout, tt.wantOut)

			if tt.wantErr != "" {
				require.Contains(t, res.stderr, tt.wantErr)
			}
		})
	}
}

func TestCheck_Skipped(t *testing.T) {
	fakeRNAfoldOnPath(t, "1.0.0")
	t.Setenv("RNAFOLD_SKIP_VERSION_CHECK", "1")

	res := execute(t, &subprocesstest.Launcher{}, "", "check")

	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "version: check skipped\n")
}

func TestCheck_RejectsArgs(t *testing.T) {
	res := execute(t, &subprocesstest.Launcher{}, "", "check", "extra")
	require.Equal(t, 1, res.code)
}
