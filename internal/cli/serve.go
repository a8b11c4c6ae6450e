package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/roboco-io/jww2dxf/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr           string
	serveMaxUploadBytes int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP 변환 서버 실행",
	Long: `JWW 변환 기능을 HTTP API로 제공합니다.

엔드포인트:
  POST /api/convert   JWW 본문을 DXF 텍스트로 변환
  POST /api/parse     JWW 본문을 파싱하여 문서 반환 (?format=json|yaml|msgpack|text)
  GET  /health        상태 확인

변환 옵션은 쿼리 파라미터로 지정할 수 있습니다:
  strict, stop_rule, scale, flip_y, include_temp_points, precision, acad_version

예시:
  jww2dxf serve
  jww2dxf serve --addr :9000
  curl --data-binary @drawing.jww localhost:8080/api/convert?flip_y=true`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "수신 주소 (기본: 설정 파일의 server.addr)")
	serveCmd.Flags().Int64Var(&serveMaxUploadBytes, "max-upload-bytes", 0, "최대 업로드 크기 (바이트)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveMaxUploadBytes > 0 {
		cfg.Server.MaxUploadBytes = serveMaxUploadBytes
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "서버 시작: %s\n", cfg.Server.Addr)
	srv := server.New(cfg, log, version)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("서버 실행 실패: %w", err)
	}
	return nil
}
