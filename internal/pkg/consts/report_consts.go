package consts

// Overdue report export.
const (
	GCSReportFolderName      = "overdue-reports"
	ReportFileNameDateFormat = "20060102_150405"
	ReportDateFormat         = "2006-01-02"
)
