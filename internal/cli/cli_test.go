package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roboco-io/jww2dxf/internal/config"
	"github.com/roboco-io/jww2dxf/internal/dxf/dxfread"
	"github.com/roboco-io/jww2dxf/internal/parser/jww/jwwtest"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeSample(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "sample.jww")
	if err := os.WriteFile(path, jwwtest.Sample(), 0644); err != nil {
		t.Fatalf("failed to write sample: %v", err)
	}
	return dir, path
}

func TestSetVersion(t *testing.T) {
	oldVersion := version
	defer func() { version = oldVersion }()

	SetVersion("1.2.3")
	if version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got '%s'", version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "jww2dxf" {
		t.Errorf("expected Use 'jww2dxf', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	for _, flag := range []string{"config", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent flag '%s' to exist", flag)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("expected Use 'version', got '%s'", versionCmd.Use)
	}

	if versionCmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	oldVersion := version
	defer func() { version = oldVersion }()
	SetVersion("9.9.9")

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "jww2dxf 9.9.9\n" {
		t.Errorf("expected 'jww2dxf 9.9.9', got %q", out)
	}
}

func TestConvertCommandFlags(t *testing.T) {
	if convertCmd.Use != "convert <file>" {
		t.Errorf("expected Use 'convert <file>', got '%s'", convertCmd.Use)
	}

	// Check flags exist
	flags := []string{"output", "strict", "stop-rule", "scale", "flip-y", "precision",
		"acad-version", "include-temp-points", "fail-on-diagnostics", "verbose", "quiet"}
	for _, flag := range flags {
		if convertCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag '%s' to exist", flag)
		}
	}
}

func TestExtractCommandFlags(t *testing.T) {
	if extractCmd.Use != "extract <file>" {
		t.Errorf("expected Use 'extract <file>', got '%s'", extractCmd.Use)
	}

	// Check flags exist
	flags := []string{"output", "format", "strict", "pretty"}
	for _, flag := range flags {
		if extractCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag '%s' to exist", flag)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	if configCmd.Use != "config" {
		t.Errorf("expected Use 'config', got '%s'", configCmd.Use)
	}

	// Check subcommands exist
	subcommands := []string{"show", "init", "set", "path"}
	for _, name := range subcommands {
		found := false
		for _, cmd := range configCmd.Commands() {
			if cmd.Use == name || cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand '%s' to exist", name)
		}
	}
}

func TestRunConvert(t *testing.T) {
	dir, input := writeSample(t)
	output := filepath.Join(dir, "sample.dxf")

	_, err := execute(t, "convert", input, "-o", output, "-q",
		"--config", filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	d, err := dxfread.ReadString(string(data))
	if err != nil {
		t.Fatalf("failed to read DXF: %v", err)
	}
	counts := d.Counts()
	if counts["LINE"] != 2 || counts["POINT"] != 1 || counts["TEXT"] != 1 {
		t.Errorf("unexpected entity counts: %v", counts)
	}
}

func TestRunConvert_Stdout(t *testing.T) {
	dir, input := writeSample(t)

	out, err := execute(t, "convert", input, "--flip-y", "--precision", "2",
		"--config", filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "-50.25") {
		t.Error("expected flipped Y coordinate in output")
	}
	if !strings.HasSuffix(out, "EOF\n") {
		t.Error("expected output to end with EOF")
	}
}

func TestRunConvert_Errors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	_, err := execute(t, "convert", filepath.Join(dir, "missing.jww"), "--config", cfgPath)
	if err == nil || !strings.Contains(err.Error(), "파일을 찾을 수 없습니다") {
		t.Errorf("expected file not found error, got %v", err)
	}

	bogus := filepath.Join(dir, "bogus.jww")
	if err := os.WriteFile(bogus, []byte("NotAJwwFile....."), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = execute(t, "convert", bogus, "--config", cfgPath)
	if err == nil || !strings.Contains(err.Error(), "지원하지 않는 파일 형식입니다") {
		t.Errorf("expected unsupported format error, got %v", err)
	}

	_, input := writeSample(t)
	_, err = execute(t, "convert", input, "--acad-version", "AC9999", "--config", cfgPath)
	if err == nil {
		t.Error("expected error for invalid acad version")
	}
}

func TestRunExtract(t *testing.T) {
	dir, input := writeSample(t)

	out, err := execute(t, "extract", input, "-f", "yaml", "--config", filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "図面") {
		t.Error("expected text content in YAML output")
	}

	_, err = execute(t, "extract", input, "-f", "xml", "--config", filepath.Join(dir, "config.yaml"))
	if err == nil || !strings.Contains(err.Error(), "지원하지 않는 출력 형식") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestRunDXFInfo(t *testing.T) {
	dir, input := writeSample(t)
	output := filepath.Join(dir, "sample.dxf")

	if _, err := execute(t, "convert", input, "-o", output, "-q",
		"--config", filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := execute(t, "dxfinfo", output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"버전: AC1015", "레이어: 257", "엔티티: 4", "LINE", "TEXT"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunConfigSet(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := execute(t, "config", "set", "convert.flip_y", "true", "--config", cfgPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.NewLoaderWithPath(cfgPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Convert.FlipY {
		t.Error("expected convert.flip_y to be true")
	}

	if _, err := execute(t, "config", "set", "convert.unknown", "1", "--config", cfgPath); err == nil {
		t.Error("expected error for unknown key")
	}

	out, err := execute(t, "config", "path", "--config", cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != cfgPath {
		t.Errorf("expected path %s, got %s", cfgPath, out)
	}
}
