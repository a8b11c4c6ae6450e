package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/roboco-io/jww2dxf/internal/config"
	"github.com/roboco-io/jww2dxf/internal/diag"
	"github.com/roboco-io/jww2dxf/internal/parser"
	"github.com/roboco-io/jww2dxf/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	convertOutput            string
	convertStrict            bool
	convertStopRule          string
	convertScale             float64
	convertFlipY             bool
	convertPrecision         int
	convertACADVersion       string
	convertTempPoints        bool
	convertFailOnDiagnostics bool
	convertVerbose           bool
	convertQuiet             bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "JWW 도면을 DXF로 변환",
	Long: `JWW 도면을 DXF 텍스트로 변환합니다.

변환 중 발생한 진단 메시지는 stderr로 출력됩니다.
치명적인 오류가 있을 때만 실패하며, --fail-on-diagnostics를 사용하면
진단 메시지가 하나라도 있을 때 실패합니다.

환경 변수:
  JWW2DXF_STRICT=true      엄격 모드 (잘린 파일을 오류로 처리)
  JWW2DXF_LOG_LEVEL=xxx    로그 레벨 (debug, info, warn, error)

예시:
  jww2dxf convert drawing.jww
  jww2dxf convert drawing.jww -o drawing.dxf
  jww2dxf convert drawing.jww --scale 0.001 --flip-y
  jww2dxf convert drawing.jww --acad-version AC1018 --precision 4`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	convertCmd.Flags().BoolVar(&convertStrict, "strict", false, "엄격 모드 (잘린 파일을 오류로 처리)")
	convertCmd.Flags().StringVar(&convertStopRule, "stop-rule", "", "엔티티 읽기 종료 조건 (auto, count, eof)")
	convertCmd.Flags().Float64Var(&convertScale, "scale", 1, "좌표 배율")
	convertCmd.Flags().BoolVar(&convertFlipY, "flip-y", false, "Y축 반전")
	convertCmd.Flags().IntVar(&convertPrecision, "precision", 6, "소수점 자릿수")
	convertCmd.Flags().StringVar(&convertACADVersion, "acad-version", "", "출력 DXF 버전 (AC1009, AC1015, AC1018, AC1021)")
	convertCmd.Flags().BoolVar(&convertTempPoints, "include-temp-points", false, "임시점도 POINT로 출력")
	convertCmd.Flags().BoolVar(&convertFailOnDiagnostics, "fail-on-diagnostics", false, "진단 메시지가 있으면 실패")
	convertCmd.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "상세 출력")
	convertCmd.Flags().BoolVarP(&convertQuiet, "quiet", "q", false, "조용한 모드")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	data, err := readInput(inputPath)
	if err != nil {
		return err
	}

	// Detect format
	format := parser.DetectFormatFromBytes(data)
	if format == parser.FormatUnknown {
		return fmt.Errorf("지원하지 않는 파일 형식입니다: %s", filepath.Ext(inputPath))
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if err := applyConvertFlags(cmd, cfg); err != nil {
		return err
	}
	opts, err := pipeline.OptionsFromConfig(cfg, log)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if !convertQuiet && convertVerbose {
		fmt.Fprintf(stderr, "입력 파일: %s\n", inputPath)
		fmt.Fprintf(stderr, "파일 형식: %s\n", format)
		fmt.Fprintf(stderr, "DXF 버전: %s\n", cfg.Output.ACADVersion)
	}

	res, err := pipeline.Run(data, opts)
	if err != nil {
		return fmt.Errorf("변환 실패: %w", err)
	}

	if !convertQuiet {
		printDiagnostics(stderr, res.Diagnostics, convertVerbose)
	}

	if err := writeOutput(cmd, convertOutput, []byte(res.Text)); err != nil {
		return err
	}

	if !convertQuiet && convertOutput != "" {
		fmt.Fprintf(stderr, "변환 완료: %s\n", convertOutput)
	}
	if convertVerbose && !convertQuiet {
		fmt.Fprintf(stderr, "엔티티: %d, 블록: %d\n", len(res.DXF.Entities), len(res.DXF.Blocks))
	}

	if convertFailOnDiagnostics && len(res.Diagnostics) > 0 {
		return fmt.Errorf("진단 메시지 %d건이 발생했습니다", len(res.Diagnostics))
	}
	return nil
}

// applyConvertFlags overrides config values with the flags set on cmd.
func applyConvertFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Parse.Strict = convertStrict
	}
	if flags.Changed("stop-rule") {
		cfg.Parse.StopRule = convertStopRule
	}
	if flags.Changed("scale") {
		cfg.Convert.UnitScale = convertScale
	}
	if flags.Changed("flip-y") {
		cfg.Convert.FlipY = convertFlipY
	}
	if flags.Changed("include-temp-points") {
		cfg.Convert.IncludeTemporaryPoints = convertTempPoints
	}
	if flags.Changed("precision") {
		cfg.Output.Precision = convertPrecision
	}
	if flags.Changed("acad-version") {
		cfg.Output.ACADVersion = convertACADVersion
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("잘못된 옵션: %w", err)
	}
	return nil
}

// printDiagnostics writes a summary line, and every diagnostic when verbose.
func printDiagnostics(w io.Writer, diags diag.List, verbose bool) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(w, "진단 메시지: %d건\n", len(diags))
	if !verbose && len(diags) > maxListedDiagnostics {
		for _, d := range diags[:maxListedDiagnostics] {
			fmt.Fprintf(w, "  %s\n", d)
		}
		fmt.Fprintf(w, "  ... 외 %d건 (-v로 전체 표시)\n", len(diags)-maxListedDiagnostics)
		return
	}
	for _, d := range diags {
		fmt.Fprintf(w, "  %s\n", d)
	}
}

const maxListedDiagnostics = 20
