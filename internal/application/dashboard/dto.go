package dashboard

import "time"

// Period values accepted by the breakdown operations
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Sentinel bucket IDs for entries without a project or category
const (
	BucketNoProject  = "no-project"
	BucketNoCategory = "no-category"
)

// Placeholder labels for the sentinel buckets
const (
	LabelNoProject  = "No project"
	LabelNoCategory = "No category"
)

// Summary contains the logged hours and progress against targets
type Summary struct {
	HoursThisWeek   float64 `json:"hoursThisWeek"`
	HoursThisMonth  float64 `json:"hoursThisMonth"`
	WeeklyTarget    float64 `json:"weeklyTarget"`
	MonthlyTarget   float64 `json:"monthlyTarget"`
	WeeklyProgress  float64 `json:"weeklyProgress"`
	MonthlyProgress float64 `json:"monthlyProgress"`
}

// Comparison contains period-over-period percentage changes
type Comparison struct {
	WeekOverWeek       float64 `json:"weekOverWeek"`
	MonthOverMonth     float64 `json:"monthOverMonth"`
	PreviousWeekHours  float64 `json:"previousWeekHours"`
	PreviousMonthHours float64 `json:"previousMonthHours"`
}

// TimesheetStatus contains per-status counts and the current week's status
type TimesheetStatus struct {
	Current   string `json:"current"`
	Draft     int64  `json:"draft"`
	Submitted int64  `json:"submitted"`
	Validated int64  `json:"validated"`
	Rejected  int64  `json:"rejected"`
}

// EmployeeDashboard is the full dashboard payload for one user
type EmployeeDashboard struct {
	Summary         Summary         `json:"summary"`
	Comparison      Comparison      `json:"comparison"`
	TimesheetStatus TimesheetStatus `json:"timesheetStatus"`
}

// Bucket is one aggregation group in a breakdown
type Bucket struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Code       string  `json:"code,omitempty"`
	Minutes    int     `json:"minutes"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
}

// Breakdown is the result of a by-project or by-category aggregation
type Breakdown struct {
	Period      string    `json:"period"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	Breakdown   []Bucket  `json:"breakdown"`
	TotalHours  float64   `json:"totalHours"`
}

// TrendDay is one calendar day in a trend window
type TrendDay struct {
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Hours   float64 `json:"hours"`
}

// Trend is the result of a daily trend aggregation
type Trend struct {
	Period      int        `json:"period"`
	DailyTarget float64    `json:"dailyTarget"`
	Trend       []TrendDay `json:"trend"`
	Average     float64    `json:"average"`
	Total       float64    `json:"total"`
}
