// Package cli implements the jww2dxf command line.
package cli

import (
	"fmt"
	"os"

	"github.com/roboco-io/jww2dxf/internal/config"
	"github.com/roboco-io/jww2dxf/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "jww2dxf",
	Short: "JWW(Jw_cad) 도면을 DXF로 변환",
	Long: `jww2dxf는 Jw_cad의 JWW 바이너리 도면을 읽어 DXF 텍스트로 변환합니다.

변환할 수 없는 요소는 건너뛰거나 근사하며, 진단 메시지로 보고합니다.

예시:
  jww2dxf convert drawing.jww -o drawing.dxf
  jww2dxf extract drawing.jww --format yaml
  jww2dxf dxfinfo drawing.dxf
  jww2dxf serve --addr :8080`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jww2dxf %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "설정 파일 경로 (기본: ~/.jww2dxf/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "로그 레벨 (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath), nil
	}
	return config.NewLoader()
}

// loadConfig loads the effective config, applies the --log-level flag and
// builds the logger.
func loadConfig() (*config.Config, *zap.Logger, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("설정 오류: %w", err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("로거 초기화 실패: %w", err)
	}
	return cfg, log, nil
}

// readInput checks that path exists and returns its contents.
func readInput(path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("파일을 찾을 수 없습니다: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("파일 읽기 실패: %w", err)
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	return nil
}
