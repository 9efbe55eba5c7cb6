package crm

// Countries is the label set of the Country column.
var Countries = []string{
	"Spain", "France", "Italy", "Germany", "Portugal",
	"Netherlands", "Sweden", "Denmark", "Ireland", "Belgium",
}

// ServiceLines is the label set of the Service_Line column.
var ServiceLines = []string{
	"Primary Care Clinic",
	"Telemedicine Provider",
	"Mental Health Services",
	"Diagnostics Lab",
	"Rehabilitation Center",
	"Home Care Provider",
	"Public Health NGO",
}

// profile holds the behaviour priors of one service line.
type profile struct {
	engagement    float64 // mean engagement rate
	responseHours float64 // typical response time
	revenueEUR    float64 // annual revenue or operating budget scale
}

var profiles = map[string]profile{
	"Primary Care Clinic":    {engagement: 0.70, responseHours: 16, revenueEUR: 600_000},
	"Telemedicine Provider":  {engagement: 0.75, responseHours: 8, revenueEUR: 700_000},
	"Mental Health Services": {engagement: 0.68, responseHours: 20, revenueEUR: 500_000},
	"Diagnostics Lab":        {engagement: 0.62, responseHours: 14, revenueEUR: 800_000},
	"Rehabilitation Center":  {engagement: 0.65, responseHours: 24, revenueEUR: 450_000},
	"Home Care Provider":     {engagement: 0.66, responseHours: 18, revenueEUR: 550_000},
	"Public Health NGO":      {engagement: 0.64, responseHours: 28, revenueEUR: 250_000},
}

// Column domains.
const (
	engagementSigma = 0.07
	engagementMin   = 0.05
	engagementMax   = 0.98

	responseShift = 0.1
	responseSigma = 0.30
	responseMin   = 2
	responseMax   = 72

	leadsPerEngagement = 14
	leadsMinRate       = 1.5

	satisfactionBase  = 5.2
	satisfactionSlope = 3.8
	satisfactionNoise = 0.8
	satisfactionMin   = 1
	satisfactionMax   = 10

	revenueShift = 0.25
	revenueSigma = 0.40
	revenueMin   = 80_000
	revenueMax   = 4_000_000
)

// Churn score coefficients. Lower engagement and satisfaction and slower
// responses raise the attrition risk.
const (
	churnIntercept    = -1.9
	churnEngagement   = -2.1
	churnSatisfaction = -0.22
	churnResponse     = 0.035
	churnRevenue      = -0.0000025
	churnLeads        = -0.03
)
