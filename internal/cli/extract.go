package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/roboco-io/jww2dxf/internal/export"
	"github.com/roboco-io/jww2dxf/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	extractOutput      string
	extractFormat      string
	extractStrict      bool
	extractPrettyPrint bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "JWW 도면에서 중간 표현(IR) 추출",
	Long: `JWW 도면을 파싱하여 중간 표현(IR)을 추출합니다.

DXF 변환 없이 파싱 단계만 실행하며, 문서와 진단 메시지를 함께 출력합니다.
출력 형식은 JSON, YAML, MessagePack 또는 텍스트(요약)를 지원합니다.

예시:
  jww2dxf extract drawing.jww
  jww2dxf extract drawing.jww -o drawing.json
  jww2dxf extract drawing.jww --format yaml
  jww2dxf extract drawing.jww --format msgpack -o drawing.msgpack
  jww2dxf extract drawing.jww --format text`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "출력 형식 ("+strings.Join(export.List(), ", ")+")")
	extractCmd.Flags().BoolVar(&extractStrict, "strict", false, "엄격 모드 (잘린 파일을 오류로 처리)")
	extractCmd.Flags().BoolVar(&extractPrettyPrint, "pretty", true, "JSON 들여쓰기 적용")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	enc, err := extractEncoder(extractFormat)
	if err != nil {
		return err
	}

	data, err := readInput(inputPath)
	if err != nil {
		return err
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if cmd.Flags().Changed("strict") {
		cfg.Parse.Strict = extractStrict
	}
	opts, err := pipeline.OptionsFromConfig(cfg, log)
	if err != nil {
		return err
	}

	doc, diags, err := pipeline.Parse(data, opts)
	if err != nil {
		return fmt.Errorf("문서 파싱 실패: %w", err)
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, export.NewPayload(doc, diags)); err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}

	if err := writeOutput(cmd, extractOutput, buf.Bytes()); err != nil {
		return err
	}
	if extractOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "IR 추출 완료: %s\n", extractOutput)
	}
	return nil
}

// extractEncoder resolves the output format, honoring --pretty for JSON.
func extractEncoder(format string) (export.Encoder, error) {
	enc, err := export.Get(strings.ToLower(format))
	if err != nil {
		return nil, fmt.Errorf("지원하지 않는 출력 형식: %s (지원: %s)", format, strings.Join(export.List(), ", "))
	}
	if _, ok := enc.(export.JSON); ok {
		return export.JSON{Indent: extractPrettyPrint}, nil
	}
	return enc, nil
}
