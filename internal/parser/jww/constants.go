// Package jww provides a parser for Jw_cad JWW binary drawings.
package jww

// JWW 파일 포맷 상수 정의
// 본문은 MFC CArchive 직렬화 형식을 따른다.

const (
	// 파일 시그니처
	Signature = "JwwData."

	// 레이어 테이블: 16 그룹 × (state, write layer, scale, protect + 16 × (state, protect))
	layerGroupSize = 4 + 4 + 8 + 4 + 16*(4+4)
	layerTableSize = 16 * layerGroupSize
)

// MFC CArchive 객체 태그
const (
	tagNull      uint16 = 0x8000 // NULL 객체
	tagNewClass  uint16 = 0xFFFF // 새 클래스 정의 (schema, 이름 길이, 이름)
	tagClassFlag uint16 = 0x8000 // 0x8000|pid 형태의 클래스 참조
	tagBigObject uint16 = 0x7FFF // 다음 DWORD가 실제 태그

	bigClassFlag uint32 = 0x80000000

	countEscape uint16 = 0xFFFF // WORD 개수 뒤에 DWORD 개수가 이어짐
)

// 엔티티 클래스 이름
const (
	ClassLine      = "CDataSen"
	ClassArc       = "CDataEnko"
	ClassPoint     = "CDataTen"
	ClassText      = "CDataMoji"
	ClassSolid     = "CDataSolid"
	ClassBlock     = "CDataBlock"
	ClassDimension = "CDataSunpou"
	ClassList      = "CDataList" // 블록 정의
	classPrefix    = "CData"
)

// 클래스 이름 길이 범위 (엔티티 리스트 탐색용)
const (
	minClassNameLen = 8
	maxClassNameLen = 20
)

// 버전별 레이아웃 차이
const (
	versionPenWidth       = 351 // EntityBase에 pen width 추가
	versionDimensionExtra = 420 // CDataSunpou에 SXF 모드/보조선/보조점 추가
)

const (
	penStyleMarker = 100 // CDataTen에 마커 코드/각도/배율이 붙는 선종
	penColorRGB    = 10  // CDataSolid에 COLORREF가 붙는 선색
)

// 레이어 번호 상한 (재동기화 판정용)
const maxLayerIndex = 16
