package services

import (
	"time"

	"github.com/brandworks/crm-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Band is the bucket an achieved percentage falls in
type Band string

const (
	BandCritical Band = "critical"
	BandLow      Band = "low"
	BandFair     Band = "fair"
	BandGood     Band = "good"
	BandStrong   Band = "strong"
	BandAchieved Band = "achieved"
)

var hundred = decimal.NewFromInt(100)

// bandFloors are the lower bounds of each band, highest first
var bandFloors = []struct {
	floor int64
	band  Band
}{
	{100, BandAchieved},
	{80, BandStrong},
	{60, BandGood},
	{40, BandFair},
	{20, BandLow},
	{0, BandCritical},
}

// AchievedPercentage returns achieved/target*100 rounded to two places.
// A zero or negative target yields 0, and so does a negative result.
func AchievedPercentage(achieved, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	pct := achieved.Mul(hundred).Div(target).Round(2)
	if pct.IsNegative() {
		return decimal.Zero
	}
	return pct
}

// BandFor maps a percentage to its band
func BandFor(pct decimal.Decimal) Band {
	for _, b := range bandFloors {
		if pct.GreaterThanOrEqual(decimal.NewFromInt(b.floor)) {
			return b.band
		}
	}
	return BandCritical
}

// PerformanceQuery selects whose performance to report over which days
type PerformanceQuery struct {
	ExecutiveID *uint
	From        *time.Time
	To          *time.Time // exclusive
}

// PerformanceReport is the achieved-vs-target summary for a period
type PerformanceReport struct {
	ExecutiveID        *uint           `json:"executive_id"`
	From               *time.Time      `json:"from"`
	To                 *time.Time      `json:"to"`
	Achieved           decimal.Decimal `json:"achieved"`
	Target             decimal.Decimal `json:"target"`
	Orders             int64           `json:"orders"`
	Calls              int64           `json:"calls"`
	WhatsApp           int64           `json:"whatsapp"`
	AchievedPercentage decimal.Decimal `json:"achieved_percentage"`
	Band               Band            `json:"band"`
}

// MonthlyBucket is the order volume of one calendar month
type MonthlyBucket struct {
	Month    string          `json:"month"` // YYYY-MM
	Orders   int64           `json:"orders"`
	Achieved decimal.Decimal `json:"achieved"`
}

// DashboardCounts is the headline numbers of the admin dashboard
type DashboardCounts struct {
	Orders             int64            `json:"orders"`
	PendingRows        int64            `json:"pending_rows"`
	DesignRequests     map[string]int64 `json:"design_requests"`
	ProspectiveClients map[string]int64 `json:"prospective_clients"`
	LowStockItems      int64            `json:"low_stock_items"`
	Employees          int64            `json:"employees"`
}

// PerformanceService aggregates orders, targets and interactions
type PerformanceService struct {
	db *gorm.DB
}

// NewPerformanceService creates a performance service on db
func NewPerformanceService(db *gorm.DB) *PerformanceService {
	return &PerformanceService{db: db}
}

// Report computes the achieved-vs-target summary for the query
func (s *PerformanceService) Report(q PerformanceQuery) (*PerformanceReport, error) {
	report := &PerformanceReport{
		ExecutiveID: q.ExecutiveID,
		From:        q.From,
		To:          q.To,
	}

	var orderTotals struct {
		Achieved decimal.Decimal
		Orders   int64
	}
	orders := s.db.Model(&models.Order{}).
		Select("COALESCE(SUM(discounted_total), 0) AS achieved, COUNT(*) AS orders")
	orders = scopeExecutive(orders, q.ExecutiveID)
	if q.From != nil {
		orders = orders.Where("order_date >= ?", *q.From)
	}
	if q.To != nil {
		orders = orders.Where("order_date < ?", *q.To)
	}
	if err := orders.Scan(&orderTotals).Error; err != nil {
		return nil, err
	}
	report.Achieved = orderTotals.Achieved.Round(2)
	report.Orders = orderTotals.Orders

	var targetTotal struct {
		Amount decimal.Decimal
	}
	targets := s.db.Model(&models.Target{}).Select("COALESCE(SUM(amount), 0) AS amount")
	targets = scopeExecutive(targets, q.ExecutiveID)
	if q.From != nil {
		targets = targets.Where("month >= ?", q.From.Format("2006-01"))
	}
	if q.To != nil {
		lastDay := q.To.AddDate(0, 0, -1)
		targets = targets.Where("month <= ?", lastDay.Format("2006-01"))
	}
	if err := targets.Scan(&targetTotal).Error; err != nil {
		return nil, err
	}
	report.Target = targetTotal.Amount.Round(2)

	var interactions []struct {
		Type  models.InteractionType
		Total int64
	}
	counts := s.db.Model(&models.Interaction{}).
		Select("type, COALESCE(SUM(interaction_count), 0) AS total").
		Group("type")
	counts = scopeExecutive(counts, q.ExecutiveID)
	if q.From != nil {
		counts = counts.Where("occurred_on >= ?", *q.From)
	}
	if q.To != nil {
		counts = counts.Where("occurred_on < ?", *q.To)
	}
	if err := counts.Scan(&interactions).Error; err != nil {
		return nil, err
	}
	for _, row := range interactions {
		switch row.Type {
		case models.InteractionCall:
			report.Calls = row.Total
		case models.InteractionWhatsApp:
			report.WhatsApp = row.Total
		}
	}

	report.AchievedPercentage = AchievedPercentage(report.Achieved, report.Target)
	report.Band = BandFor(report.AchievedPercentage)
	return report, nil
}

// Monthly returns twelve buckets of order totals for the year
func (s *PerformanceService) Monthly(executiveID *uint, year int) ([]MonthlyBucket, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var orders []models.Order
	query := s.db.Select("order_date", "discounted_total").
		Where("order_date >= ? AND order_date < ?", start, end)
	query = scopeExecutive(query, executiveID)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	buckets := make([]MonthlyBucket, 12)
	for i := range buckets {
		buckets[i] = MonthlyBucket{
			Month:    start.AddDate(0, i, 0).Format("2006-01"),
			Achieved: decimal.Zero,
		}
	}
	for _, order := range orders {
		i := int(order.OrderDate.UTC().Month()) - 1
		buckets[i].Orders++
		buckets[i].Achieved = buckets[i].Achieved.Add(order.DiscountedTotal)
	}
	return buckets, nil
}

// Counts gathers the dashboard headline numbers
func (s *PerformanceService) Counts() (*DashboardCounts, error) {
	counts := &DashboardCounts{
		DesignRequests:     map[string]int64{},
		ProspectiveClients: map[string]int64{},
	}

	if err := s.db.Model(&models.Order{}).Count(&counts.Orders).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.OrderRow{}).Where("is_completed = ?", false).Count(&counts.PendingRows).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.InventoryItem{}).Where("quantity <= reorder_level").Count(&counts.LowStockItems).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Employee{}).Where("active = ?", true).Count(&counts.Employees).Error; err != nil {
		return nil, err
	}

	for _, status := range models.DesignStatuses {
		counts.DesignRequests[string(status)] = 0
	}
	if err := s.groupCount(&models.DesignRequest{}, counts.DesignRequests); err != nil {
		return nil, err
	}

	for _, status := range models.ClientStatuses {
		counts.ProspectiveClients[string(status)] = 0
	}
	if err := s.groupCount(&models.ProspectiveClient{}, counts.ProspectiveClients); err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *PerformanceService) groupCount(model interface{}, into map[string]int64) error {
	var rows []struct {
		Status string
		Total  int64
	}
	err := s.db.Model(model).Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error
	if err != nil {
		return err
	}
	for _, row := range rows {
		into[row.Status] = row.Total
	}
	return nil
}

func scopeExecutive(db *gorm.DB, executiveID *uint) *gorm.DB {
	if executiveID == nil {
		return db
	}
	return db.Where("executive_id = ?", *executiveID)
}
