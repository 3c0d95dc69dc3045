package batch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
	"github.com/ezypuz/courseplanner/internal/pkg/logger"
)

const (
	excelPath  = "/sugang/cc/cc100InterfaceExcel.action"
	searchPath = "/sugang/cc/cc100InterfaceSrch.action"

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36 Edg/141.0.0.0"
)

// semesterCodes maps semesters to the registration site's term codes
var semesterCodes = map[models.Semester]string{
	models.SemesterSpring: "U000200001U000300001",
	models.SemesterSummer: "U000200001U000300002",
	models.SemesterAutumn: "U000200002U000300001",
	models.SemesterWinter: "U000200002U000300002",
}

// CatalogClient downloads course workbooks from the registration site
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient creates a new CatalogClient
func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// formValues builds the full form the site's search page submits. The site
// rejects requests missing any of these fields, so all of them are sent even
// when empty.
func formValues(year int, semesterCode string) url.Values {
	form := url.Values{}
	form.Set("workType", "EX")
	form.Set("pageNo", "1")
	form.Set("srchOpenSchyy", strconv.Itoa(year))
	form.Set("srchOpenShtm", semesterCode)
	for _, key := range []string{
		"srchSbjtNm", "srchSbjtCd", "seeMore", "srchCptnCorsFg", "srchOpenShyr",
		"srchOpenUpSbjtFldCd", "srchOpenSbjtFldCd", "srchOpenUpDeptCd", "srchOpenDeptCd",
		"srchOpenMjCd", "srchOpenSubmattCorsFg", "srchOpenSubmattFgCd1", "srchOpenSubmattFgCd2",
		"srchOpenSubmattFgCd3", "srchOpenSubmattFgCd4", "srchOpenSubmattFgCd5",
		"srchOpenSubmattFgCd6", "srchOpenSubmattFgCd7", "srchOpenSubmattFgCd8",
		"srchOpenSubmattFgCd9", "srchExcept", "srchOpenPntMin", "srchOpenPntMax",
		"srchCamp", "srchBdNo", "srchProfNm", "srchOpenSbjtTmNm", "srchOpenSbjtDayNm",
		"srchOpenSbjtTm", "srchOpenSbjtNm", "srchTlsnAplyCapaCntMin", "srchTlsnAplyCapaCntMax",
		"srchLsnProgType", "srchTlsnRcntMin", "srchTlsnRcntMax", "srchMrksGvMthd",
		"srchIsEngSbjt", "srchMrksApprMthdChgPosbYn", "srchIsPendingCourse", "srchGenrlRemoteLtYn",
	} {
		form.Set(key, "")
	}
	form.Set("srchLanguage", "ko")
	form.Set("srchCurrPage", "1")
	form.Set("srchPageSize", "9999")
	return form
}

// DownloadWorkbook fetches the course workbook for one term
func (c *CatalogClient) DownloadWorkbook(ctx context.Context, year int, semester models.Semester) ([]byte, error) {
	semesterCode, ok := semesterCodes[semester]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unknown semester")
	}

	form := formValues(year, semesterCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+excelPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	// The site serves the browser search page's export; it expects to be
	// called from that page.
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Referer", c.baseURL+searchPath)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Int("year", year).Str("semester", string(semester)).Msg("Workbook download request failed")
		return nil, apperrors.NewCustomError(apperrors.ErrImportDownloadFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewCustomError(apperrors.ErrImportDownloadFailed,
			fmt.Sprintf("registration site returned status %d", resp.StatusCode))
	}

	// A 2xx with an HTML body means the site rejected the form parameters
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return nil, apperrors.NewCustomError(apperrors.ErrImportDownloadFailed,
			"registration site returned HTML instead of a workbook")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrImportDownloadFailed, err.Error())
	}
	if len(data) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrImportDownloadFailed, "empty workbook body")
	}

	return data, nil
}
