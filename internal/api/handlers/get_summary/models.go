package get_summary

import "github.com/m04kA/TMS-InventoryService/internal/service/inventory/models"

// DaySummaryResponse статистика одной даты
type DaySummaryResponse struct {
	Date      string `json:"date"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
}

// SummaryResponse HTTP response model
type SummaryResponse struct {
	PackageType string               `json:"packageType"`
	PackageID   int64                `json:"packageId"`
	FromDate    string               `json:"fromDate"`
	ToDate      string               `json:"toDate"`
	Days        []DaySummaryResponse `json:"days"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SummaryResponse) *SummaryResponse {
	days := make([]DaySummaryResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DaySummaryResponse{
			Date:      d.Date,
			Capacity:  d.Capacity,
			Booked:    d.Booked,
			Available: d.Available,
		})
	}

	return &SummaryResponse{
		PackageType: string(resp.PackageType),
		PackageID:   resp.PackageID,
		FromDate:    resp.FromDate,
		ToDate:      resp.ToDate,
		Days:        days,
	}
}
