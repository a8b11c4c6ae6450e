package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/roboco-io/jww2dxf/internal/dxf/dxfread"
	"github.com/spf13/cobra"
)

var dxfinfoCmd = &cobra.Command{
	Use:   "dxfinfo <file>",
	Short: "DXF 파일의 엔티티 통계 표시",
	Long: `DXF 파일을 읽어 버전, 레이어 수, 블록 수, 엔티티 종류별 개수를 표시합니다.

변환 결과를 다른 도구의 출력과 비교할 때 사용합니다.

예시:
  jww2dxf dxfinfo drawing.dxf`,
	Args: cobra.ExactArgs(1),
	RunE: runDXFInfo,
}

func init() {
	rootCmd.AddCommand(dxfinfoCmd)
}

func runDXFInfo(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	f, err := os.Open(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("파일을 찾을 수 없습니다: %s", inputPath)
		}
		return fmt.Errorf("파일 열기 실패: %w", err)
	}
	defer f.Close()

	d, err := dxfread.Read(f)
	if err != nil {
		return fmt.Errorf("DXF 읽기 실패: %w", err)
	}

	return printDXFInfo(cmd.OutOrStdout(), d)
}

func printDXFInfo(out io.Writer, d *dxfread.Drawing) error {
	acadver := d.HeaderString("$ACADVER")
	if acadver == "" {
		acadver = "(없음)"
	}
	fmt.Fprintf(out, "버전: %s\n", acadver)
	fmt.Fprintf(out, "레이어: %d\n", len(d.Layers))
	fmt.Fprintf(out, "선종류: %d\n", len(d.LineTypes))
	fmt.Fprintf(out, "블록: %d\n", len(d.Blocks))
	fmt.Fprintf(out, "엔티티: %d\n\n", len(d.Entities))

	if len(d.Entities) == 0 {
		return nil
	}

	counts := d.Counts()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "종류\t개수")
	fmt.Fprintln(w, "----\t----")
	for _, typ := range d.Types() {
		fmt.Fprintf(w, "%s\t%d\n", typ, counts[typ])
	}
	return w.Flush()
}
