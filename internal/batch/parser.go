package batch

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
	"github.com/ezypuz/courseplanner/internal/pkg/logger"
)

// Workbook column headers (the registration site exports Korean headers)
const (
	colDivision            = "교과구분"
	colCollege             = "개설대학"
	colDepartment          = "개설학과"
	colCourseType          = "이수과정"
	colGrade               = "학년"
	colCourseNumber        = "교과목번호"
	colLectureNumber       = "강좌번호"
	colTitle               = "교과목명"
	colSubtitle            = "부제명"
	colCredits             = "학점"
	colClassTime           = "강의"
	colLabTime             = "실습"
	colSessionTimes        = "수업교시"
	colCourseFormat        = "수업형태"
	colLocation            = "강의실(동-호)"
	colProfessor           = "주담당교수"
	colPreRegTotal         = "장바구니신청인원(전체)"
	colPreRegNonFreshman   = "재학생장바구니신청인원"
	colPreRegFreshman      = "신입생장바구니신청인원"
	colQuota               = "정원"
	colRegistrationCount   = "수강신청인원"
	colRemark              = "비고"
	colLanguage            = "강의언어"
	colStatus              = "개설상태"
)

// headerRowIndex is the zero-based row the site puts the column headers on
const headerRowIndex = 2

// quotaPattern matches "50" or "50 (45)"
var quotaPattern = regexp.MustCompile(`(\d+)(?:\s*\((\d+)\))?`)

// sessionPattern matches one "월(600-750)" style day/time chunk
var sessionPattern = regexp.MustCompile(`([월화수목금토일])\((\d+)-(\d+)\)`)

// dayIndex maps the site's day characters to 0 (Monday) .. 6 (Sunday)
var dayIndex = map[string]int{
	"월": 0, "화": 1, "수": 2, "목": 3, "금": 4, "토": 5, "일": 6,
}

// ParseResult carries the rows a workbook parse produced, with per-row counts
type ParseResult struct {
	Courses      []*models.Course
	SuccessCount int
	FailCount    int
}

// ParseWorkbook converts the downloaded workbook into course records.
// Rows that cannot be converted are counted as failures and skipped.
func ParseWorkbook(data []byte, year int, semester models.Semester) (*ParseResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrImportParseFailed, err.Error())
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrImportParseFailed, err.Error())
	}
	if len(rows) <= headerRowIndex {
		return nil, apperrors.NewCustomError(apperrors.ErrImportParseFailed, "workbook has no header row")
	}

	columnIndex := map[string]int{}
	for i, name := range rows[headerRowIndex] {
		columnIndex[strings.TrimSpace(name)] = i
	}
	if _, ok := columnIndex[colCourseNumber]; !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrImportParseFailed, "workbook header is missing the course number column")
	}

	result := &ParseResult{}
	for rowIndex := headerRowIndex + 1; rowIndex < len(rows); rowIndex++ {
		course, err := convertRow(rows[rowIndex], columnIndex, year, semester)
		if err != nil {
			logger.Warn().Err(err).Int("row", rowIndex).Msg("Skipping unparseable workbook row")
			result.FailCount++
			continue
		}
		result.Courses = append(result.Courses, course)
		result.SuccessCount++
	}

	return result, nil
}

// cellValue returns the trimmed cell under a header, nil when empty or absent
func cellValue(row []string, columnIndex map[string]int, name string) *string {
	idx, ok := columnIndex[name]
	if !ok || idx >= len(row) {
		return nil
	}
	value := strings.TrimSpace(row[idx])
	if value == "" {
		return nil
	}
	return &value
}

func parseIntPtr(s *string) *int {
	if s == nil {
		return nil
	}
	v, err := strconv.Atoi(*s)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloatPtr(s *string) *float64 {
	if s == nil {
		return nil
	}
	v, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseQuota splits "50 (45)" into total and non-freshman quotas
func parseQuota(s *string) (*int, *int) {
	if s == nil {
		return nil, nil
	}
	m := quotaPattern.FindStringSubmatch(*s)
	if m == nil {
		return nil, nil
	}
	quota, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, nil
	}
	var nonFreshman *int
	if m[2] != "" {
		if v, err := strconv.Atoi(m[2]); err == nil {
			nonFreshman = &v
		}
	}
	return &quota, nonFreshman
}

// parseSessions turns a "월(600-750)/수(600-750)" cell into session records.
// Times in the cell are already minutes from midnight. A cell that matches
// nothing yields no sessions, leaving the course with null meeting times.
func parseSessions(timesCell, locationCell, formatCell *string) []*models.ClassSession {
	if timesCell == nil {
		return nil
	}

	matches := sessionPattern.FindAllStringSubmatch(*timesCell, -1)
	sessions := make([]*models.ClassSession, 0, len(matches))
	for _, m := range matches {
		day, ok := dayIndex[m[1]]
		if !ok {
			continue
		}
		start, err1 := strconv.Atoi(m[2])
		end, err2 := strconv.Atoi(m[3])
		if err1 != nil || err2 != nil {
			continue
		}
		sessions = append(sessions, &models.ClassSession{
			DayOfWeek:    &day,
			StartTime:    &start,
			EndTime:      &end,
			Location:     locationCell,
			CourseFormat: formatCell,
		})
	}
	return sessions
}

// convertRow turns one workbook data row into a course with its sessions
func convertRow(row []string, columnIndex map[string]int, year int, semester models.Semester) (*models.Course, error) {
	courseNumber := cellValue(row, columnIndex, colCourseNumber)
	lectureNumber := cellValue(row, columnIndex, colLectureNumber)
	title := cellValue(row, columnIndex, colTitle)
	if courseNumber == nil || lectureNumber == nil || title == nil {
		return nil, fmt.Errorf("row is missing course number, lecture number or title")
	}

	department := cellValue(row, columnIndex, colDepartment)
	college := cellValue(row, columnIndex, colCollege)
	if department != nil {
		// The export writes the literal string "null" for some departments
		cleaned := strings.TrimSpace(strings.ReplaceAll(*department, "null", ""))
		if cleaned == "" {
			department = college
		} else {
			department = &cleaned
		}
	}

	professor := cellValue(row, columnIndex, colProfessor)
	if professor != nil {
		// Drop the trailing parenthesized employment info
		if idx := strings.LastIndex(*professor, " ("); idx >= 0 {
			cleaned := (*professor)[:idx]
			professor = &cleaned
		}
	}

	quota, nonFreshmanQuota := parseQuota(cellValue(row, columnIndex, colQuota))

	course := &models.Course{
		AcademicYear:                    year,
		Semester:                        semester,
		Division:                        cellValue(row, columnIndex, colDivision),
		College:                         college,
		Department:                      department,
		CourseType:                      cellValue(row, columnIndex, colCourseType),
		Grade:                           parseIntPtr(cellValue(row, columnIndex, colGrade)),
		CourseNumber:                    *courseNumber,
		LectureNumber:                   *lectureNumber,
		Title:                           *title,
		Subtitle:                        cellValue(row, columnIndex, colSubtitle),
		Credits:                         parseFloatPtr(cellValue(row, columnIndex, colCredits)),
		ClassTime:                       cellValue(row, columnIndex, colClassTime),
		LabTime:                         cellValue(row, columnIndex, colLabTime),
		Professor:                       professor,
		PreRegistrationCount:            parseIntPtr(cellValue(row, columnIndex, colPreRegTotal)),
		PreRegistrationCountNonFreshman: parseIntPtr(cellValue(row, columnIndex, colPreRegNonFreshman)),
		PreRegistrationCountFreshman:    parseIntPtr(cellValue(row, columnIndex, colPreRegFreshman)),
		Quota:                           quota,
		NonFreshmanQuota:                nonFreshmanQuota,
		RegistrationCount:               parseIntPtr(cellValue(row, columnIndex, colRegistrationCount)),
		Remark:                          cellValue(row, columnIndex, colRemark),
		Language:                        cellValue(row, columnIndex, colLanguage),
		Status:                          cellValue(row, columnIndex, colStatus),
	}

	course.Sessions = parseSessions(
		cellValue(row, columnIndex, colSessionTimes),
		cellValue(row, columnIndex, colLocation),
		cellValue(row, columnIndex, colCourseFormat),
	)

	return course, nil
}
