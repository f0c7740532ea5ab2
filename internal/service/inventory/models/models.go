package models

import "github.com/m04kA/TMS-InventoryService/internal/domain"

// GetSummaryRequest запрос агрегированной статистики по датам
type GetSummaryRequest struct {
	PackageType domain.PackageType
	PackageID   int64
	FromDate    string // "2006-01-02"
	ToDate      string // "2006-01-02"
}

// DaySummary статистика одной даты
type DaySummary struct {
	Date      string
	Capacity  int
	Booked    int
	Available int
}

// SummaryResponse агрегированная статистика по диапазону дат
type SummaryResponse struct {
	PackageType domain.PackageType
	PackageID   int64
	FromDate    string
	ToDate      string
	Days        []DaySummary
}

// FromDomainSummaries конвертирует доменные агрегаты в response
func FromDomainSummaries(packageType domain.PackageType, packageID int64, fromDate, toDate string, summaries []domain.DateSummary) *SummaryResponse {
	days := make([]DaySummary, 0, len(summaries))
	for _, s := range summaries {
		days = append(days, DaySummary{
			Date:      s.Date,
			Capacity:  s.Capacity,
			Booked:    s.Booked,
			Available: s.Available,
		})
	}

	return &SummaryResponse{
		PackageType: packageType,
		PackageID:   packageID,
		FromDate:    fromDate,
		ToDate:      toDate,
		Days:        days,
	}
}
