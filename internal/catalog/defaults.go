package catalog

// Default builds the North Carolina catalog from the 2024 County Health
// Rankings analytic export. Category order matches the dashboard tabs;
// indicator order matches the dropdowns.
func Default() *Catalog {
	c := New()

	pct := func(category, indicator, field string) Definition {
		return Definition{
			Category:  category,
			Indicator: indicator,
			Unit:      "%",
			Domain:    Domain{Min: 0, Max: 100},
			ScaleHint: "Viridis",
			Rule:      MappingRule{Source: "chr", Field: field, Transform: Identity},
		}
	}

	defs := []Definition{
		// Economic Stability
		{
			Category:  "Economic Stability",
			Indicator: "Median Household Income",
			Unit:      "$",
			Domain:    Domain{Min: 0, Max: 250000},
			ScaleHint: "Viridis",
			Rule:      MappingRule{Source: "chr", Field: "Median Household Income", Transform: Identity},
		},
		pct("Economic Stability", "% Unemployed", "% Unemployed"),
		pct("Economic Stability", "% Homeowners", "% Homeowners"),
		pct("Economic Stability", "% Households with Broadband Access", "% Households with Broadband Access"),

		// Education Access and Quality
		pct("Education Access and Quality", "% Completed High School", "% Completed High School"),
		pct("Education Access and Quality", "% Some College", "% Some College"),
		pct("Education Access and Quality", "High School Graduation Rate", "High School Graduation Rate"),

		// Health Care Access and Quality
		pct("Health Care Access and Quality", "% Uninsured", "% Uninsured"),
		{
			Category:  "Health Care Access and Quality",
			Indicator: "Primary Care Physicians Rate",
			Unit:      "per 100,000",
			Domain:    Domain{Min: 0, Max: 500},
			ScaleHint: "Viridis",
			Rule: MappingRule{
				Source:      "chr",
				Field:       "# Primary Care Physicians",
				Transform:   Rate,
				Denominator: "Population",
				Per:         100000,
			},
		},
		{
			Category:  "Health Care Access and Quality",
			Indicator: "Dentist Rate",
			Unit:      "per 100,000",
			Domain:    Domain{Min: 0, Max: 500},
			ScaleHint: "Viridis",
			Rule: MappingRule{
				Source:      "chr",
				Field:       "# Dentists",
				Transform:   Rate,
				Denominator: "Population",
				Per:         100000,
			},
		},
		pct("Health Care Access and Quality", "% Flu Vaccinated", "% Flu Vaccinated"),

		// Neighborhood and Built Environment
		{
			Category:  "Neighborhood and Built Environment",
			Indicator: "Food Environment Index",
			Unit:      "index",
			Domain:    Domain{Min: 0, Max: 10},
			ScaleHint: "Viridis",
			Rule:      MappingRule{Source: "chr", Field: "Food Environment Index", Transform: Identity},
		},
		{
			Category:  "Neighborhood and Built Environment",
			Indicator: "Average Daily PM2.5",
			Unit:      "µg/m³",
			Domain:    Domain{Min: 0, Max: 50},
			ScaleHint: "Viridis",
			Rule:      MappingRule{Source: "chr", Field: "Average Daily PM2.5", Transform: Identity},
		},
		{
			Category:  "Neighborhood and Built Environment",
			Indicator: "Presence of Water Violation",
			Unit:      "yes/no",
			Domain:    Domain{Min: 0, Max: 1},
			ScaleHint: "Viridis",
			Rule: MappingRule{
				Source:    "chr",
				Field:     "Presence of Water Violation",
				Transform: Recode,
				Codes:     map[string]float64{"yes": 1, "no": 0},
			},
		},
		pct("Neighborhood and Built Environment", "% Severe Housing Problems", "% Severe Housing Problems"),

		// Social and Community Context
		{
			Category:  "Social and Community Context",
			Indicator: "Social Association Rate",
			Unit:      "per 10,000",
			Domain:    Domain{Min: 0, Max: 100},
			ScaleHint: "Viridis",
			Rule:      MappingRule{Source: "chr", Field: "Social Association Rate", Transform: Identity},
		},
		pct("Social and Community Context", "% Voter Turnout", "% Voter Turnout"),
		{
			// The census export carries participation as a 0-1 proportion.
			Category:  "Social and Community Context",
			Indicator: "% Census Participation",
			Unit:      "%",
			Domain:    Domain{Min: 0, Max: 100},
			ScaleHint: "Viridis",
			Rule: MappingRule{
				Source:    "chr",
				Field:     "Census Participation Proportion",
				Transform: Scale,
				Factor:    100,
			},
		},

		// Health Outcomes
		{
			Category:  "Health Outcomes",
			Indicator: "Life Expectancy",
			Unit:      "years",
			Domain:    Domain{Min: 50, Max: 100},
			ScaleHint: "Viridis",
			Rule:      MappingRule{Source: "chr", Field: "Life Expectancy", Transform: Identity},
		},
		{
			Category:  "Health Outcomes",
			Indicator: "Years of Potential Life Lost Rate",
			Unit:      "per 100,000",
			Domain:    Domain{Min: 0, Max: 25000},
			ScaleHint: "Viridis",
			Rule:      MappingRule{Source: "chr", Field: "Years of Potential Life Lost Rate", Transform: Identity},
		},
		{
			Category:  "Health Outcomes",
			Indicator: "Infant Mortality Rate",
			Unit:      "per 1,000 live births",
			Domain:    Domain{Min: 0, Max: 50},
			ScaleHint: "Viridis",
			Rule:      MappingRule{Source: "chr", Field: "Infant Mortality Rate", Transform: Identity},
		},
		{
			Category:  "Health Outcomes",
			Indicator: "Drug Overdose Mortality Rate",
			Unit:      "per 100,000",
			Domain:    Domain{Min: 0, Max: 200},
			ScaleHint: "Viridis",
			Rule:      MappingRule{Source: "chr", Field: "Drug Overdose Mortality Rate", Transform: Identity},
		},

		// Behavioral Factors
		pct("Behavioral Factors", "% Adults Reporting Currently Smoking", "% Adults Reporting Currently Smoking"),
		pct("Behavioral Factors", "% Adults with Obesity", "% Adults with Obesity"),
		pct("Behavioral Factors", "% Physically Inactive", "% Physically Inactive"),
		pct("Behavioral Factors", "% Excessive Drinking", "% Excessive Drinking"),
	}

	for _, def := range defs {
		if err := c.Register(def); err != nil {
			// Default definitions are compiled in; a duplicate is a programming error.
			panic(err)
		}
	}
	return c
}
