package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/roboco-io/jww2dxf/internal/parser/jww/jwwtest"
)

// binaryName returns the appropriate binary name for the current OS
func binaryName() string {
	if runtime.GOOS == "windows" {
		return "jww2dxf_test.exe"
	}
	return "jww2dxf_test"
}

// buildTestBinary builds the binary into dir and returns its path
func buildTestBinary(t *testing.T, dir string) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	binPath := filepath.Join(dir, binaryName())
	buildCmd := exec.Command("go", "build", "-o", binPath, ".")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\noutput: %s", err, output)
	}
	return binPath
}

// run executes the binary with a private HOME so no user config is read
func run(t *testing.T, bin, home string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(), "HOME="+home, "USERPROFILE="+home)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	bin := buildTestBinary(t, dir)

	sampleFile := filepath.Join(dir, "sample.jww")
	if err := os.WriteFile(sampleFile, jwwtest.Sample(), 0644); err != nil {
		t.Fatalf("failed to write sample: %v", err)
	}
	textFile := filepath.Join(dir, "test.txt")
	if err := os.WriteFile(textFile, []byte("plain text"), 0644); err != nil {
		t.Fatalf("failed to write text file: %v", err)
	}
	dxfFile := filepath.Join(dir, "sample.dxf")

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput []string
	}{
		{
			name:       "basic convert",
			args:       []string{"convert", sampleFile},
			wantOutput: []string{"SECTION", "ENTITIES", "EOF"},
		},
		{
			name:       "convert to file",
			args:       []string{"convert", sampleFile, "-o", dxfFile, "-v"},
			wantOutput: []string{"변환 완료", "엔티티: 4"},
		},
		{
			name:       "dxfinfo",
			args:       []string{"dxfinfo", dxfFile},
			wantOutput: []string{"LINE", "POINT", "TEXT"},
		},
		{
			name:    "convert non-existent file",
			args:    []string{"convert", "nonexistent.jww"},
			wantErr: true,
		},
		{
			name:    "convert unsupported format",
			args:    []string{"convert", textFile},
			wantErr: true,
		},
		{
			name:       "extract text summary",
			args:       []string{"extract", sampleFile, "-f", "text"},
			wantOutput: []string{"Entities: 4"},
		},
		{
			name:       "version",
			args:       []string{"version"},
			wantOutput: []string{"jww2dxf"},
		},
		{
			name:       "config path",
			args:       []string{"config", "path"},
			wantOutput: []string{"config.yaml"},
		},
		{
			name:       "config show",
			args:       []string{"config", "show"},
			wantOutput: []string{"acad_version", "JWW2DXF_STRICT"},
		},
		{
			name:       "help",
			args:       []string{"--help"},
			wantOutput: []string{"jww2dxf", "convert", "extract", "dxfinfo", "serve", "config"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			output, err := run(t, bin, dir, tc.args...)

			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v\noutput: %s", err, output)
			}

			for _, want := range tc.wantOutput {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}
