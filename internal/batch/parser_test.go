package batch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

// buildWorkbook writes a workbook in the registration site's layout: two
// banner rows, the Korean header row, then data rows.
func buildWorkbook(t *testing.T, dataRows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []string{
		colDivision, colCollege, colDepartment, colCourseType, colGrade,
		colCourseNumber, colLectureNumber, colTitle, colSubtitle, colCredits,
		colClassTime, colLabTime, colSessionTimes, colCourseFormat, colLocation,
		colProfessor, colPreRegTotal, colPreRegNonFreshman, colPreRegFreshman,
		colQuota, colRegistrationCount, colRemark, colLanguage, colStatus,
	}

	rows := [][]string{
		{"수강신청 강좌 목록"},
		{},
		header,
	}
	rows = append(rows, dataRows...)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func sampleRow() []string {
	return []string{
		"전공필수", "공과대학", "컴퓨터공학부", "학사", "3",
		"M1522.000900", "001", "자료구조", "", "4",
		"3", "1", "월(600-750)/수(600-750)", "대면강의", "301-101",
		"홍길동 (교원)", "120", "100", "20",
		"50 (45)", "48", "", "한국어", "개설",
	}
}

func TestParseWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]string{sampleRow()})

	result, err := ParseWorkbook(data, 2026, models.SemesterSpring)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if result.SuccessCount != 1 || result.FailCount != 0 {
		t.Fatalf("counts: success=%d fail=%d, want 1/0", result.SuccessCount, result.FailCount)
	}

	course := result.Courses[0]
	if course.CourseNumber != "M1522.000900" || course.LectureNumber != "001" {
		t.Fatalf("unexpected identifiers: %q %q", course.CourseNumber, course.LectureNumber)
	}
	if course.Title != "자료구조" {
		t.Fatalf("unexpected title: %q", course.Title)
	}
	if course.AcademicYear != 2026 || course.Semester != models.SemesterSpring {
		t.Fatalf("unexpected term: %d %s", course.AcademicYear, course.Semester)
	}
	if course.Credits == nil || *course.Credits != 4 {
		t.Fatalf("unexpected credits: %v", course.Credits)
	}
	if course.Professor == nil || *course.Professor != "홍길동" {
		t.Fatalf("professor suffix not stripped: %v", course.Professor)
	}
	if course.Quota == nil || *course.Quota != 50 {
		t.Fatalf("unexpected quota: %v", course.Quota)
	}
	if course.NonFreshmanQuota == nil || *course.NonFreshmanQuota != 45 {
		t.Fatalf("unexpected non-freshman quota: %v", course.NonFreshmanQuota)
	}
	if course.RegistrationCount == nil || *course.RegistrationCount != 48 {
		t.Fatalf("unexpected registration count: %v", course.RegistrationCount)
	}

	if len(course.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(course.Sessions))
	}
	first := course.Sessions[0]
	if *first.DayOfWeek != 0 || *first.StartTime != 600 || *first.EndTime != 750 {
		t.Fatalf("unexpected first session: %d %d-%d", *first.DayOfWeek, *first.StartTime, *first.EndTime)
	}
	second := course.Sessions[1]
	if *second.DayOfWeek != 2 {
		t.Fatalf("unexpected second session day: %d", *second.DayOfWeek)
	}
	if first.Location == nil || *first.Location != "301-101" {
		t.Fatalf("unexpected session location: %v", first.Location)
	}
}

func TestParseWorkbookDepartmentNullFallsBackToCollege(t *testing.T) {
	row := sampleRow()
	row[2] = "null"
	data := buildWorkbook(t, [][]string{row})

	result, err := ParseWorkbook(data, 2026, models.SemesterSpring)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	course := result.Courses[0]
	if course.Department == nil || *course.Department != "공과대학" {
		t.Fatalf("department did not fall back to college: %v", course.Department)
	}
}

func TestParseWorkbookQuotaWithoutParenthetical(t *testing.T) {
	row := sampleRow()
	row[19] = "30"
	data := buildWorkbook(t, [][]string{row})

	result, err := ParseWorkbook(data, 2026, models.SemesterSpring)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	course := result.Courses[0]
	if course.Quota == nil || *course.Quota != 30 {
		t.Fatalf("unexpected quota: %v", course.Quota)
	}
	if course.NonFreshmanQuota != nil {
		t.Fatalf("non-freshman quota should be nil, got %v", *course.NonFreshmanQuota)
	}
}

func TestParseWorkbookNoSessionTimes(t *testing.T) {
	row := sampleRow()
	row[12] = ""
	data := buildWorkbook(t, [][]string{row})

	result, err := ParseWorkbook(data, 2026, models.SemesterSpring)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if got := len(result.Courses[0].Sessions); got != 0 {
		t.Fatalf("got %d sessions for a row without times, want 0", got)
	}
}

func TestParseWorkbookCountsBadRows(t *testing.T) {
	missingNumber := sampleRow()
	missingNumber[5] = ""
	data := buildWorkbook(t, [][]string{sampleRow(), missingNumber})

	result, err := ParseWorkbook(data, 2026, models.SemesterSpring)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if result.SuccessCount != 1 || result.FailCount != 1 {
		t.Fatalf("counts: success=%d fail=%d, want 1/1", result.SuccessCount, result.FailCount)
	}
}

func TestParseWorkbookMissingHeader(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]string{"not"})
	_ = f.SetSheetRow(sheet, "A3", &[]string{"a", "real", "header"})
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	_, err := ParseWorkbook(buf.Bytes(), 2026, models.SemesterSpring)
	if !errors.Is(err, apperrors.ErrImportParseFailed) {
		t.Fatalf("got %v, want ErrImportParseFailed", err)
	}
}

func TestParseWorkbookNotASpreadsheet(t *testing.T) {
	_, err := ParseWorkbook([]byte("<html>error page</html>"), 2026, models.SemesterSpring)
	if !errors.Is(err, apperrors.ErrImportParseFailed) {
		t.Fatalf("got %v, want ErrImportParseFailed", err)
	}
}
