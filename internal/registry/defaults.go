// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import "github.com/pdiddy/health-report/pkg/types"

// Manager-report deliverables.
const (
	StrategyManager       = "strategyManager"
	SalesMarketingManager = "salesMarketingManager"
	OperationsManager     = "operationsManager"
	FinancialManager      = "financialManager"
	PeopleManager         = "peopleManager"
	TechnologyManager     = "technologyManager"
	RiskComplianceManager = "riskComplianceManager"
)

// DefaultTablesSpec returns the built-in chapter and dimension vocabulary.
func DefaultTablesSpec() TablesSpec {
	return TablesSpec{
		Chapters: []ChapterSpec{
			{
				Code: "GE", Name: "Growth Engine",
				Dimensions: []DimensionSpec{
					{Code: "STR", Name: "Strategy", Manager: StrategyManager},
					{Code: "SAL", Name: "Sales", Manager: SalesMarketingManager},
					{Code: "MKT", Name: "Marketing", Manager: SalesMarketingManager},
					{Code: "CXP", Name: "Customer Experience", Manager: SalesMarketingManager},
				},
			},
			{
				Code: "PH", Name: "Performance & Health",
				Dimensions: []DimensionSpec{
					{Code: "OPS", Name: "Operations", Manager: OperationsManager},
					{Code: "FIN", Name: "Financials", Manager: FinancialManager},
				},
			},
			{
				Code: "PL", Name: "People & Leadership",
				Dimensions: []DimensionSpec{
					{Code: "HRS", Name: "Human Resources", Manager: PeopleManager},
					{Code: "LDG", Name: "Leadership & Governance", Manager: StrategyManager},
				},
			},
			{
				Code: "RS", Name: "Resilience & Safeguards",
				Dimensions: []DimensionSpec{
					{Code: "TIN", Name: "Technology & Innovation", Manager: TechnologyManager},
					{Code: "IDS", Name: "IT, Data & Systems", Manager: TechnologyManager},
					{Code: "RMS", Name: "Risk Management", Manager: RiskComplianceManager},
					{Code: "CMP", Name: "Compliance", Manager: RiskComplianceManager},
				},
			},
		},
		Sources: map[types.SourceFileType]string{
			types.SourceDeepDiveGrowthEngine:        "GE",
			types.SourceDeepDivePerformanceHealth:   "PH",
			types.SourceDeepDivePeopleLeadership:    "PL",
			types.SourceDeepDiveResilienceSafeguard: "RS",
		},
	}
}

// DefaultTables returns tables built from DefaultTablesSpec.
func DefaultTables() *Tables {
	t, err := NewTables(DefaultTablesSpec())
	if err != nil {
		panic("registry: invalid built-in tables: " + err.Error())
	}
	return t
}
