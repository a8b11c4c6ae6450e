package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/roboco-io/jww2dxf/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리",
	Long: `jww2dxf 설정을 관리합니다.

설정 파일 위치: ~/.jww2dxf/config.yaml

하위 명령:
  show    현재 설정 표시
  init    기본 설정 파일 생성
  set     설정 값 변경
  path    설정 파일 경로 표시`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Long: `현재 적용된 설정을 표시합니다.

환경 변수가 설정되어 있으면 해당 값이 적용됩니다.
설정 파일이 없으면 기본값이 표시됩니다.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	Long: `기본 설정 파일을 ~/.jww2dxf/config.yaml에 생성합니다.

이미 설정 파일이 있는 경우 오류가 발생합니다.
기존 파일을 덮어쓰려면 --force 플래그를 사용하세요.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

지원하는 키:
  ` + strings.Join(config.Keys(), "\n  ") + `

예시:
  jww2dxf config set convert.flip_y true
  jww2dxf config set output.acad_version AC1018
  jww2dxf config set log.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 표시",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := newLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "오류: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "기존 설정 파일 덮어쓰기")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	out := cmd.OutOrStdout()

	// Show config file status
	if loader.Exists() {
		fmt.Fprintf(out, "설정 파일: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "설정 파일: (기본값 사용)\n\n")
	}

	// Display as YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("설정 출력 실패: %w", err)
	}

	fmt.Fprintln(out, string(data))

	// Show environment variable overrides
	fmt.Fprintln(out, "환경 변수:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{config.EnvStrict, "엄격 모드"},
		{config.EnvLogLevel, "로그 레벨"},
	}

	for _, ev := range envVars {
		status := "(미설정)"
		if v := os.Getenv(ev.key); v != "" {
			status = v
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일 생성됨: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("설정 변경 실패: %w\n지원하는 키: %s", err, strings.Join(config.Keys(), ", "))
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("설정 저장 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 변경됨: %s = %s\n", key, value)
	return nil
}
