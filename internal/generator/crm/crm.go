// Package crm generates the synthetic healthcare CRM client table.
package crm

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/synthgen/internal/dataset"
	"github.com/leapstack-labs/synthgen/internal/generator"
	"github.com/leapstack-labs/synthgen/internal/sampling"
)

// TableName names the generated table, e.g. when loading it into a warehouse.
const TableName = "crm_clients"

// Column names in file order.
const (
	ColClientID     = "Client_ID"
	ColCountry      = "Country"
	ColServiceLine  = "Service_Line"
	ColEngagement   = "Engagement_Rate"
	ColResponseTime = "Response_Time_Hours"
	ColLeads        = "Leads_Converted"
	ColSatisfaction = "Satisfaction_Score"
	ColRevenue      = "Revenue_Last_Year_EUR"
	ColChurnRisk    = "Churn_Risk"
)

// Generate builds an n-row CRM table from a generator seeded with seed.
func Generate(n int, seed int64) (*dataset.Table, error) {
	return Sample(sampling.NewGenerator(seed), n)
}

// Sample builds an n-row CRM table drawing every value from g.
func Sample(g *sampling.Generator, n int) (*dataset.Table, error) {
	if err := generator.CheckRows(n); err != nil {
		return nil, err
	}

	countries := make([]string, n)
	for i := range countries {
		countries[i] = g.Choice(Countries)
	}
	services := make([]string, n)
	for i := range services {
		services[i] = g.Choice(ServiceLines)
	}

	engagement := make([]float64, n)
	for i, s := range services {
		engagement[i] = sampling.Clip(g.Normal(profiles[s].engagement, engagementSigma), engagementMin, engagementMax)
	}

	response := make([]float64, n)
	for i, s := range services {
		mu := math.Log(profiles[s].responseHours) - responseShift
		response[i] = sampling.Clip(g.LogNormal(mu, responseSigma), responseMin, responseMax)
	}

	leads := make([]int64, n)
	for i, e := range engagement {
		leads[i] = g.Poisson(math.Max(e*leadsPerEngagement, leadsMinRate))
	}

	satisfaction := make([]float64, n)
	for i, e := range engagement {
		s := satisfactionBase + e*satisfactionSlope + g.Normal(0, satisfactionNoise)
		satisfaction[i] = sampling.Clip(s, satisfactionMin, satisfactionMax)
	}

	revenue := make([]float64, n)
	for i, s := range services {
		mu := math.Log(profiles[s].revenueEUR) - revenueShift
		revenue[i] = sampling.Clip(g.LogNormal(mu, revenueSigma), revenueMin, revenueMax)
	}

	churn := make([]int64, n)
	for i := range churn {
		churn[i] = g.Bernoulli(ChurnProbability(engagement[i], satisfaction[i], response[i], revenue[i], leads[i]))
	}

	ids := make([]string, n)
	for i := range ids {
		ids[i] = ClientID(i)
	}

	return dataset.NewTable(TableName,
		dataset.NewStringColumn(ColClientID, nil, ids),
		dataset.NewStringColumn(ColCountry, Countries, countries),
		dataset.NewStringColumn(ColServiceLine, ServiceLines, services),
		dataset.NewFloatColumn(ColEngagement, 3, engagementMin, engagementMax, engagement),
		dataset.NewFloatColumn(ColResponseTime, 1, responseMin, responseMax, response),
		dataset.NewIntColumn(ColLeads, 0, math.Inf(1), leads),
		dataset.NewFloatColumn(ColSatisfaction, 1, satisfactionMin, satisfactionMax, satisfaction),
		dataset.NewFloatColumn(ColRevenue, 2, revenueMin, revenueMax, revenue),
		dataset.NewIntColumn(ColChurnRisk, 0, 1, churn),
	)
}

// ClientID formats the identifier of the i-th (zero-based) client.
func ClientID(i int) string {
	return fmt.Sprintf("C%04d", i+1)
}

// ChurnProbability maps a client's sampled attributes to its attrition probability.
func ChurnProbability(engagement, satisfaction, responseHours, revenueEUR float64, leads int64) float64 {
	z := churnIntercept +
		churnEngagement*engagement +
		churnSatisfaction*(satisfaction-5) +
		churnResponse*responseHours +
		churnRevenue*revenueEUR +
		churnLeads*float64(leads)
	return sampling.Sigmoid(z)
}
