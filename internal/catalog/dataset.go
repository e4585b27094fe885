// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package catalog

import "github.com/quarrylabs/materium/internal/models"

// MaterialTypes lists the catalog's material categories.
var MaterialTypes = []string{
	"Concrete", "Steel", "Wood", "Brick", "Glass", "Aluminum",
	"Stone", "Ceramic", "Plastic", "Composite",
}

// Regions lists the supplier service regions.
var Regions = []string{"Northeast", "Midwest", "South", "West"}

// Applications lists the construction uses materials can be matched to.
var Applications = []string{
	"Foundation", "Structural", "Roofing", "Flooring", "Wall",
	"Insulation", "Facade", "Windows", "Doors", "Interior Finishing",
}

// builtinMaterials returns the compiled-in materials dataset.
// Cost units vary per material family (cubic meter, metric ton,
// square meter, per 1000 bricks); scores are on 0-10 scales.
func builtinMaterials() []models.MaterialRecord {
	return []models.MaterialRecord{
		{
			ID: 1, Name: "Standard Portland Cement Concrete", Type: "Concrete",
			Applications:        []string{"Foundation", "Structural", "Flooring"},
			StrengthMPa:         25.0,
			DurabilityYears:     50,
			ThermalConductivity: 1.7,
			FireResistanceHours: 4,
			WaterResistance:     8,
			EcoFriendlyScore:    4,
			CostPerUnit:         110.0,
			Availability:        9,
			MaintenanceRequirement: 3,
			WeatherResistance:      models.WeatherResistance{Heat: 9, Cold: 7, Humidity: 8, UV: 8},
			InstallationComplexity: 5,
			SupplierID:             1,
		},
		{
			ID: 2, Name: "High-Strength Concrete", Type: "Concrete",
			Applications:        []string{"Foundation", "Structural"},
			StrengthMPa:         60.0,
			DurabilityYears:     75,
			ThermalConductivity: 1.6,
			FireResistanceHours: 4.5,
			WaterResistance:     9,
			EcoFriendlyScore:    3,
			CostPerUnit:         180.0,
			Availability:        7,
			MaintenanceRequirement: 2,
			WeatherResistance:      models.WeatherResistance{Heat: 9, Cold: 8, Humidity: 9, UV: 8},
			InstallationComplexity: 6,
			SupplierID:             2,
		},
		{
			ID: 3, Name: "Structural Steel (A36)", Type: "Steel",
			Applications:        []string{"Structural"},
			StrengthMPa:         400.0,
			DurabilityYears:     60,
			ThermalConductivity: 45.0,
			FireResistanceHours: 0.5,
			WaterResistance:     4,
			EcoFriendlyScore:    6,
			CostPerUnit:         2000.0,
			Availability:        8,
			MaintenanceRequirement: 5,
			WeatherResistance:      models.WeatherResistance{Heat: 6, Cold: 8, Humidity: 3, UV: 7},
			InstallationComplexity: 7,
			SupplierID:             3,
		},
		{
			ID: 4, Name: "Stainless Steel (316)", Type: "Steel",
			Applications:        []string{"Structural", "Facade"},
			StrengthMPa:         290.0,
			DurabilityYears:     100,
			ThermalConductivity: 16.0,
			FireResistanceHours: 0.75,
			WaterResistance:     9,
			EcoFriendlyScore:    7,
			CostPerUnit:         4500.0,
			Availability:        6,
			MaintenanceRequirement: 2,
			WeatherResistance:      models.WeatherResistance{Heat: 9, Cold: 9, Humidity: 9, UV: 9},
			InstallationComplexity: 8,
			SupplierID:             4,
		},
		{
			ID: 5, Name: "Douglas Fir Lumber", Type: "Wood",
			Applications:        []string{"Structural", "Flooring"},
			StrengthMPa:         85.0,
			DurabilityYears:     25,
			ThermalConductivity: 0.12,
			FireResistanceHours: 0.75,
			WaterResistance:     3,
			EcoFriendlyScore:    8,
			CostPerUnit:         600.0,
			Availability:        7,
			MaintenanceRequirement: 7,
			WeatherResistance:      models.WeatherResistance{Heat: 5, Cold: 7, Humidity: 4, UV: 3},
			InstallationComplexity: 4,
			SupplierID:             5,
		},
		{
			ID: 6, Name: "Pressure-Treated Pine", Type: "Wood",
			Applications:        []string{"Structural", "Flooring", "Wall"},
			StrengthMPa:         70.0,
			DurabilityYears:     40,
			ThermalConductivity: 0.15,
			FireResistanceHours: 0.5,
			WaterResistance:     7,
			EcoFriendlyScore:    6,
			CostPerUnit:         750.0,
			Availability:        9,
			MaintenanceRequirement: 5,
			WeatherResistance:      models.WeatherResistance{Heat: 6, Cold: 7, Humidity: 6, UV: 5},
			InstallationComplexity: 3,
			SupplierID:             6,
		},
		{
			ID: 7, Name: "Clay Brick", Type: "Brick",
			Applications:        []string{"Wall", "Facade"},
			StrengthMPa:         15.0,
			DurabilityYears:     100,
			ThermalConductivity: 0.6,
			FireResistanceHours: 6,
			WaterResistance:     7,
			EcoFriendlyScore:    7,
			CostPerUnit:         400.0,
			Availability:        9,
			MaintenanceRequirement: 2,
			WeatherResistance:      models.WeatherResistance{Heat: 9, Cold: 8, Humidity: 7, UV: 9},
			InstallationComplexity: 6,
			SupplierID:             7,
		},
		{
			ID: 8, Name: "Tempered Glass", Type: "Glass",
			Applications:        []string{"Windows", "Doors", "Facade"},
			StrengthMPa:         100.0,
			DurabilityYears:     30,
			ThermalConductivity: 1.0,
			FireResistanceHours: 0.25,
			WaterResistance:     10,
			EcoFriendlyScore:    6,
			CostPerUnit:         70.0,
			Availability:        8,
			MaintenanceRequirement: 4,
			WeatherResistance:      models.WeatherResistance{Heat: 7, Cold: 7, Humidity: 10, UV: 7},
			InstallationComplexity: 7,
			SupplierID:             8,
		},
		{
			ID: 9, Name: "Low-E Insulated Glass", Type: "Glass",
			Applications:        []string{"Windows", "Facade"},
			StrengthMPa:         90.0,
			DurabilityYears:     35,
			ThermalConductivity: 0.5,
			FireResistanceHours: 0.25,
			WaterResistance:     10,
			EcoFriendlyScore:    8,
			CostPerUnit:         120.0,
			Availability:        7,
			MaintenanceRequirement: 3,
			WeatherResistance:      models.WeatherResistance{Heat: 9, Cold: 9, Humidity: 10, UV: 9},
			InstallationComplexity: 8,
			SupplierID:             9,
		},
		{
			ID: 10, Name: "Aluminum Alloy 6061", Type: "Aluminum",
			Applications:        []string{"Structural", "Facade", "Windows", "Doors"},
			StrengthMPa:         310.0,
			DurabilityYears:     40,
			ThermalConductivity: 167.0,
			FireResistanceHours: 0.1,
			WaterResistance:     8,
			EcoFriendlyScore:    8,
			CostPerUnit:         3000.0,
			Availability:        8,
			MaintenanceRequirement: 3,
			WeatherResistance:      models.WeatherResistance{Heat: 7, Cold: 9, Humidity: 8, UV: 9},
			InstallationComplexity: 5,
			SupplierID:             10,
		},
		{
			ID: 11, Name: "Granite", Type: "Stone",
			Applications:        []string{"Flooring", "Facade", "Interior Finishing"},
			StrengthMPa:         170.0,
			DurabilityYears:     100,
			ThermalConductivity: 2.8,
			FireResistanceHours: 6,
			WaterResistance:     8,
			EcoFriendlyScore:    6,
			CostPerUnit:         200.0,
			Availability:        6,
			MaintenanceRequirement: 3,
			WeatherResistance:      models.WeatherResistance{Heat: 9, Cold: 9, Humidity: 8, UV: 9},
			InstallationComplexity: 7,
			SupplierID:             11,
		},
		{
			ID: 12, Name: "Porcelain Tile", Type: "Ceramic",
			Applications:        []string{"Flooring", "Wall", "Interior Finishing"},
			StrengthMPa:         35.0,
			DurabilityYears:     50,
			ThermalConductivity: 1.5,
			FireResistanceHours: 5,
			WaterResistance:     9,
			EcoFriendlyScore:    6,
			CostPerUnit:         30.0,
			Availability:        9,
			MaintenanceRequirement: 2,
			WeatherResistance:      models.WeatherResistance{Heat: 9, Cold: 8, Humidity: 9, UV: 9},
			InstallationComplexity: 5,
			SupplierID:             12,
		},
		{
			ID: 13, Name: "PVC", Type: "Plastic",
			Applications:        []string{"Doors", "Windows", "Interior Finishing"},
			StrengthMPa:         55.0,
			DurabilityYears:     35,
			ThermalConductivity: 0.19,
			FireResistanceHours: 0.2,
			WaterResistance:     10,
			EcoFriendlyScore:    3,
			CostPerUnit:         25.0,
			Availability:        10,
			MaintenanceRequirement: 2,
			WeatherResistance:      models.WeatherResistance{Heat: 5, Cold: 8, Humidity: 10, UV: 4},
			InstallationComplexity: 3,
			SupplierID:             13,
		},
		{
			ID: 14, Name: "Fiber Cement Board", Type: "Composite",
			Applications:        []string{"Wall", "Facade", "Roofing"},
			StrengthMPa:         20.0,
			DurabilityYears:     50,
			ThermalConductivity: 0.25,
			FireResistanceHours: 2,
			WaterResistance:     9,
			EcoFriendlyScore:    7,
			CostPerUnit:         18.0,
			Availability:        8,
			MaintenanceRequirement: 2,
			WeatherResistance:      models.WeatherResistance{Heat: 8, Cold: 8, Humidity: 9, UV: 8},
			InstallationComplexity: 4,
			SupplierID:             14,
		},
		{
			ID: 15, Name: "Composite Decking", Type: "Composite",
			Applications:        []string{"Flooring"},
			StrengthMPa:         25.0,
			DurabilityYears:     30,
			ThermalConductivity: 0.22,
			FireResistanceHours: 1,
			WaterResistance:     9,
			EcoFriendlyScore:    8,
			CostPerUnit:         65.0,
			Availability:        7,
			MaintenanceRequirement: 2,
			WeatherResistance:      models.WeatherResistance{Heat: 7, Cold: 8, Humidity: 9, UV: 7},
			InstallationComplexity: 4,
			SupplierID:             15,
		},
	}
}

func builtinSuppliers() []models.SupplierRecord {
	return []models.SupplierRecord{
		{ID: 1, Name: "ConcreteWorks Inc.", Location: "Chicago, IL", Region: "Midwest", DeliveryTimeDays: 3, ReliabilityScore: 8, PriceLevel: "Medium", Contact: "sales@concreteworks.com"},
		{ID: 2, Name: "Premium Concrete Solutions", Location: "Denver, CO", Region: "West", DeliveryTimeDays: 5, ReliabilityScore: 9, PriceLevel: "High", Contact: "orders@premiumconcrete.com"},
		{ID: 3, Name: "American Steel Corp", Location: "Pittsburgh, PA", Region: "Northeast", DeliveryTimeDays: 7, ReliabilityScore: 9, PriceLevel: "Medium", Contact: "sales@americansteel.com"},
		{ID: 4, Name: "Superior Stainless", Location: "Cleveland, OH", Region: "Midwest", DeliveryTimeDays: 10, ReliabilityScore: 8, PriceLevel: "High", Contact: "orders@superiorstainless.com"},
		{ID: 5, Name: "Northwest Timber", Location: "Seattle, WA", Region: "West", DeliveryTimeDays: 5, ReliabilityScore: 7, PriceLevel: "Medium", Contact: "info@nwtimber.com"},
		{ID: 6, Name: "Southern Pine Products", Location: "Atlanta, GA", Region: "South", DeliveryTimeDays: 4, ReliabilityScore: 8, PriceLevel: "Medium", Contact: "sales@southernpine.com"},
		{ID: 7, Name: "Classic Brick Co.", Location: "Philadelphia, PA", Region: "Northeast", DeliveryTimeDays: 6, ReliabilityScore: 9, PriceLevel: "Medium", Contact: "orders@classicbrick.com"},
		{ID: 8, Name: "Crystal Glass Works", Location: "Minneapolis, MN", Region: "Midwest", DeliveryTimeDays: 8, ReliabilityScore: 7, PriceLevel: "Medium", Contact: "sales@crystalglass.com"},
		{ID: 9, Name: "Advanced Glass Technologies", Location: "San Francisco, CA", Region: "West", DeliveryTimeDays: 12, ReliabilityScore: 9, PriceLevel: "High", Contact: "info@advancedglass.com"},
		{ID: 10, Name: "Aluminum Systems Inc.", Location: "Houston, TX", Region: "South", DeliveryTimeDays: 6, ReliabilityScore: 8, PriceLevel: "Medium", Contact: "orders@aluminumsystems.com"},
		{ID: 11, Name: "Granite Mountain Quarries", Location: "Barre, VT", Region: "Northeast", DeliveryTimeDays: 15, ReliabilityScore: 9, PriceLevel: "High", Contact: "sales@granitemountain.com"},
		{ID: 12, Name: "Ceramic Tile Distributors", Location: "Miami, FL", Region: "South", DeliveryTimeDays: 5, ReliabilityScore: 7, PriceLevel: "Low", Contact: "orders@ceramictile.com"},
		{ID: 13, Name: "Modern Plastics Corp", Location: "Dallas, TX", Region: "South", DeliveryTimeDays: 4, ReliabilityScore: 8, PriceLevel: "Low", Contact: "sales@modernplastics.com"},
		{ID: 14, Name: "Composite Building Products", Location: "Portland, OR", Region: "West", DeliveryTimeDays: 7, ReliabilityScore: 8, PriceLevel: "Medium", Contact: "info@compositebuilding.com"},
		{ID: 15, Name: "Eco Composite Materials", Location: "Austin, TX", Region: "South", DeliveryTimeDays: 9, ReliabilityScore: 7, PriceLevel: "Medium", Contact: "sales@ecocomposite.com"},
	}
}
